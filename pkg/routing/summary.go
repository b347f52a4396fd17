package routing

import (
	"html"
	"regexp"
	"strings"
)

var (
	numberSpan      = regexp.MustCompile(`<span class="number">(.*?)</span>`)
	nextStreetSpan  = regexp.MustCompile(`<span class="next-street">(.*?)</span>`)
	lineSpan        = regexp.MustCompile(`<span class="line">(.*?)</span>`)
	destinationSpan = regexp.MustCompile(`<span class="destination">(.*?)</span>`)
)

const summarySeparator = "; "

// vehicleSummary lists road numbers, or the next street where a maneuver
// has no road number.
func vehicleSummary(routes []Route) string {
	return summarize(routes, func(instruction string) string {
		if n := capture(numberSpan, instruction); n != "" {
			return strings.NewReplacer("(", "", ")", "").Replace(n)
		}
		return capture(nextStreetSpan, instruction)
	})
}

// streetSummary lists the streets walked or cycled.
func streetSummary(routes []Route) string {
	return summarize(routes, func(instruction string) string {
		return capture(nextStreetSpan, instruction)
	})
}

// transitSummary lists each boarded line with its destination.
func transitSummary(routes []Route) string {
	return summarize(routes, func(instruction string) string {
		line := capture(lineSpan, instruction)
		if line == "" {
			return ""
		}
		if dest := capture(destinationSpan, instruction); dest != "" {
			return line + " - " + dest
		}
		return line
	})
}

// summarize extracts one entity per maneuver of the first route and joins
// the distinct entities in order of appearance.
func summarize(routes []Route, extract func(string) string) string {
	if len(routes) == 0 {
		return ""
	}

	seen := make(map[string]bool)
	var entities []string
	for _, leg := range routes[0].Leg {
		for _, m := range leg.Maneuver {
			entity := strings.TrimSpace(extract(m.Instruction))
			if entity == "" || seen[entity] {
				continue
			}
			seen[entity] = true
			entities = append(entities, entity)
		}
	}
	return strings.Join(entities, summarySeparator)
}

func capture(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return html.UnescapeString(m[1])
}
