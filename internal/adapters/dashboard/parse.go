package dashboard

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// printerRecord is one printer's row on the monitor page before any
// normalization. Field values are whatever the page happened to contain.
type printerRecord struct {
	id            string
	description   string
	statusMessage string
	printerText   string
	rowTail       string
	levels        map[string]int
}

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(?:script|style)>`)
	lineBreakRe   = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockCloseRe  = regexp.MustCompile(`(?i)</(p|div|tr|td|th|li|h1|h2|h3|h4|h5|h6)>`)
	anyTagRe      = regexp.MustCompile(`(?i)<[^>]+>`)
	spaceRe       = regexp.MustCompile(`\s+`)

	printerRowRe = regexp.MustCompile(`^(\d{5})\b(.*)$`)
	tailNumberRe = regexp.MustCompile(`\b(\d{1,3})\b`)
	fuserLineRe  = regexp.MustCompile(`(?i)fuser:\s*(\d{1,3})%`)
	beltLineRe   = regexp.MustCompile(`(?i)belt:\s*(\d{1,3})%`)

	emptyTrayRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\btray\s*([A-Za-z0-9-]+)\s*(?:is\s*)?(?:empty|out|no\s+paper)\b`),
		regexp.MustCompile(`(?i)\bpaper\s*out\s*(?:in\s*)?tray\s*([A-Za-z0-9-]+)\b`),
		regexp.MustCompile(`(?i)\b(?:empty|out)\s*tray\s*([A-Za-z0-9-]+)\b`),
	}
	genericEmptyRe = regexp.MustCompile(`(?i)\b(paper out|tray empty)\b`)
	trayTokenRe    = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// lowSupplyRules maps low-supply phrasing in status text to the supply it
// concerns. "Low ink" shows up on devices that report black toner as ink.
var lowSupplyRules = []struct {
	re  *regexp.Regexp
	key string
}{
	{regexp.MustCompile(`(?i)\blow\s+toner\b`), "toner_black"},
	{regexp.MustCompile(`(?i)\blow\s+ink\b`), "toner_black"},
	{regexp.MustCompile(`(?i)\blow\s+fuser\b`), "fuser"},
}

// tailMetricKeys is the fixed order of the ten trailing 0-100 metrics on a
// printer row.
var tailMetricKeys = []string{
	"toner_black", "toner_cyan", "toner_magenta", "toner_yellow",
	"drum_black", "drum_cyan", "drum_magenta", "drum_yellow",
	"belt", "fuser",
}

// htmlToLines reduces the monitor page markup to compact text lines: script
// and style bodies dropped, block boundaries turned into newlines, entities
// unescaped, runs of whitespace collapsed.
func htmlToLines(page string) []string {
	cleaned := scriptStyleRe.ReplaceAllString(page, " ")
	cleaned = lineBreakRe.ReplaceAllString(cleaned, "\n")
	cleaned = blockCloseRe.ReplaceAllString(cleaned, "\n")
	cleaned = anyTagRe.ReplaceAllString(cleaned, " ")
	cleaned = html.UnescapeString(cleaned)

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		compact := strings.TrimSpace(spaceRe.ReplaceAllString(line, " "))
		if compact != "" {
			lines = append(lines, compact)
		}
	}
	return lines
}

// parsePage extracts the record for one configured printer. It fails when no
// printer rows parse at all (page layout changed) or when the requested
// printer is missing from the page.
func parsePage(page, printerID string) (printerRecord, error) {
	lines := htmlToLines(page)

	var records []printerRecord
	var current *printerRecord

	for _, line := range lines {
		if m := printerRowRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				records = append(records, *current)
			}
			tail := strings.TrimSpace(m[2])
			current = &printerRecord{
				id:      m[1],
				rowTail: tail,
				levels:  parseTailMetrics(tail),
			}
			continue
		}

		if current == nil {
			continue
		}

		lowered := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lowered, "description:"):
			current.description = valueAfterColon(line)
		case strings.HasPrefix(lowered, "status message:"):
			current.statusMessage = valueAfterColon(line)
		case strings.HasPrefix(lowered, "printer text:"):
			current.printerText = valueAfterColon(line)
		case strings.HasPrefix(lowered, "fuser:"):
			if m := fuserLineRe.FindStringSubmatch(line); m != nil {
				current.levels["fuser"] = mustAtoi(m[1])
			}
			if m := beltLineRe.FindStringSubmatch(line); m != nil {
				current.levels["belt"] = mustAtoi(m[1])
			}
		}
	}
	if current != nil {
		records = append(records, *current)
	}

	if len(records) == 0 {
		return printerRecord{}, fmt.Errorf("no printer rows parsed; the page layout may have changed")
	}

	for _, record := range records {
		if record.id == printerID {
			return record, nil
		}
	}

	return printerRecord{}, fmt.Errorf("printer %s not found in monitor page", printerID)
}

// parseTailMetrics pulls the trailing ten 0-100 values off a printer row.
// Anything else on the tail (timestamps, counters) disqualifies itself by
// being out of range or by not leaving exactly ten candidates at the end.
func parseTailMetrics(tail string) map[string]int {
	levels := map[string]int{}

	var numbers []int
	for _, m := range tailNumberRe.FindAllStringSubmatch(tail, -1) {
		numbers = append(numbers, mustAtoi(m[1]))
	}

	if len(numbers) < len(tailMetricKeys) {
		return levels
	}

	candidate := numbers[len(numbers)-len(tailMetricKeys):]
	for _, value := range candidate {
		if value < 0 || value > 100 {
			return levels
		}
	}

	for i, key := range tailMetricKeys {
		levels[key] = candidate[i]
	}
	return levels
}

// detectEmptyTrays scans free-form status text for tray-empty phrasing and
// returns canonical tray component IDs. A bare "paper out" with no tray
// number maps to tray_unknown.
func detectEmptyTrays(text string) []string {
	found := map[string]struct{}{}

	for _, re := range emptyTrayRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			found[normalizeTrayID(m[1])] = struct{}{}
		}
	}

	if len(found) == 0 && genericEmptyRe.MatchString(text) {
		found["tray_unknown"] = struct{}{}
	}

	trays := make([]string, 0, len(found))
	for tray := range found {
		trays = append(trays, tray)
	}
	return trays
}

// normalizeTrayID canonicalizes page phrasing like "Tray 2", "TRAY-2" or
// "2" into the registry form "tray_2".
func normalizeTrayID(value string) string {
	token := strings.ToUpper(trayTokenRe.ReplaceAllString(value, ""))
	if token == "" {
		return "tray_unknown"
	}

	if strings.HasPrefix(token, "TRAY") {
		token = strings.TrimPrefix(token, "TRAY")
		if token == "" {
			token = "UNKNOWN"
		}
	}

	if n, err := strconv.Atoi(token); err == nil {
		return fmt.Sprintf("tray_%d", n)
	}
	return "tray_" + strings.ToLower(token)
}

// rawSnapshot assembles the loosely typed mapping handed to the Normalizer:
// every parsed supply level plus an explicit empty/filled value per
// configured tray, judged from the printer's status text. When a supply has
// no parsed level but the status text reports it low, the textual report
// stands in for the missing number.
func rawSnapshot(record printerRecord, trays []string) map[string]any {
	raw := make(map[string]any, len(record.levels)+len(trays))
	for key, value := range record.levels {
		raw[key] = value
	}

	statusBlob := record.statusMessage + " " + record.printerText
	for _, rule := range lowSupplyRules {
		if _, ok := raw[rule.key]; ok {
			continue
		}
		if rule.re.MatchString(statusBlob) {
			raw[rule.key] = "low"
		}
	}

	combined := combinedStatusText(record)
	empty := map[string]struct{}{}
	for _, tray := range detectEmptyTrays(combined) {
		empty[tray] = struct{}{}
	}

	for _, tray := range trays {
		if _, ok := empty[tray]; ok {
			raw[tray] = "empty"
		} else {
			raw[tray] = "filled"
		}
	}

	return raw
}

func combinedStatusText(record printerRecord) string {
	var parts []string
	for _, value := range []string{record.statusMessage, record.printerText, record.rowTail} {
		lowered := strings.ToLower(value)
		if value == "" || lowered == "none" || lowered == "n/a" {
			continue
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, " ")
}

func valueAfterColon(line string) string {
	_, after, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(after)
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
