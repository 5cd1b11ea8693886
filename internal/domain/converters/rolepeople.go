// Package converters holds the text notations used to store structured
// data in single string fields, for use in web forms and CSV columns.
//
// The formats are tolerated rather than designed: each one originated in
// a different input channel over the life of the registry, and the
// decoder has to accept all of them.
package converters

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// DefaultRole is assigned when a name arrives without an explicit role.
const DefaultRole = "author"

// RolePerson is one named contributor with a role and optional ids.
type RolePerson struct {
	NamePart string `json:"namepart"`
	Role     string `json:"role"`
	ID       int    `json:"id,omitempty"`
	NRID     string `json:"nr_id,omitempty"`
}

var (
	// "Masuda, Kikuye [42]" -> term "Masuda, Kikuye", id 42
	bracketIDRegex = regexp.MustCompile(`(?P<term>[\w\d -:()_,` + "`" + `'"]+)\s\[(?P<id>\d+)\]`)

	// repairs for "dirty JSON": single-quoted strings and Python booleans
	dirtyQuotes = regexp.MustCompile(`([ \{,:\[])(u)?'([^']+)'`)
	dirtyFalse  = regexp.MustCompile(` False([, \}\]])`)
	dirtyTrue   = regexp.MustCompile(` True([, \}\]])`)
)

// NormalizeText collapses line endings and trims surrounding whitespace.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}

// TextToRolePeople parses a rolepeople string into records. Accepts a
// JSON array (strict, then dirty-JSON repaired) or semicolon-delimited
// raw text; unparseable input degrades to an empty list.
func TextToRolePeople(text string) []RolePerson {
	text = NormalizeText(text)
	if text == "" {
		return []RolePerson{}
	}

	if strings.Contains(text, "{") || strings.Contains(text, "[") {
		if people, ok := parseJSON(text); ok {
			return filterRolePeople(people)
		}
		if people, ok := parseJSON(repairDirtyJSON(text)); ok {
			return filterRolePeople(people)
		}
		// fall through: bracket chars can also appear in raw "Name [42]" text
	}

	return filterRolePeople(RolePeopleFromStrings(strings.Split(text, ";")))
}

// RolePeopleFromStrings parses raw text segments, one (or more) person
// per segment. Items that themselves contain semicolons are split and
// reinserted at the front of the work list, so a spreadsheet cell that
// glued several people into one item keeps its left-to-right order.
func RolePeopleFromStrings(texts []string) []RolePerson {
	people := make([]RolePerson, 0, len(texts))
	queue := make([]string, len(texts))
	copy(queue, texts)
	for len(queue) > 0 {
		text := queue[0]
		queue = queue[1:]
		if strings.Contains(text, ";") {
			queue = append(strings.Split(text, ";"), queue...)
			continue
		}
		txt := strings.TrimSpace(text)
		if txt == "" {
			continue
		}
		people = append(people, parseRolePerson(txt))
	}
	return people
}

// parseRolePerson parses a single segment, e.g.
//
//	"namepart:Sadako Kashiwagi|role:narrator|id:856"
//	"Sadako Kashiwagi:narrator"
//	"Sadako Kashiwagi"
func parseRolePerson(txt string) RolePerson {
	person := RolePerson{Role: DefaultRole}

	switch {
	case strings.Contains(txt, "|") && strings.Contains(txt, ":"):
		for _, chunk := range strings.Split(txt, "|") {
			key, val, ok := strings.Cut(chunk, ":")
			if !ok {
				continue
			}
			setRoleField(&person, strings.TrimSpace(key), strings.TrimSpace(val))
		}
	case strings.Contains(txt, ":"):
		left, right, _ := strings.Cut(txt, ":")
		left = strings.TrimSpace(left)
		right = strings.TrimSpace(right)
		if isRoleFieldName(left) {
			setRoleField(&person, left, right)
		} else {
			person.NamePart = left
			person.Role = right
		}
	default:
		person.NamePart = txt
	}

	// extract person ID if present
	if term, id, ok := splitBracketID(person.NamePart); ok {
		person.NamePart = term
		if n, err := strconv.Atoi(id); err == nil {
			person.ID = n
		}
	}
	return person
}

func isRoleFieldName(key string) bool {
	switch key {
	case "namepart", "name", "role", "id", "nr_id":
		return true
	}
	return false
}

func setRoleField(person *RolePerson, key, val string) {
	switch key {
	case "namepart":
		person.NamePart = val
	case "name":
		// alias, but never clobber an explicit namepart
		if person.NamePart == "" {
			person.NamePart = val
		}
	case "role":
		person.Role = val
	case "id":
		if n, err := strconv.Atoi(val); err == nil {
			person.ID = n
		}
	case "nr_id":
		person.NRID = val
	}
}

// splitBracketID extracts a trailing "... [123]" id suffix.
func splitBracketID(text string) (term, id string, ok bool) {
	m := bracketIDRegex.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), m[2], true
}

// parseJSON decodes a JSON array of rolepeople objects, tolerating ids
// encoded as numbers or strings.
func parseJSON(text string) ([]RolePerson, bool) {
	var raw []map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}
	people := make([]RolePerson, 0, len(raw))
	for _, item := range raw {
		person := RolePerson{Role: DefaultRole}
		for key, val := range item {
			setRoleField(&person, key, anyToString(val))
		}
		people = append(people, person)
	}
	return people, true
}

func anyToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// repairDirtyJSON rewrites single-quoted keys/values and Python-style
// True/False literals into valid JSON.
func repairDirtyJSON(text string) string {
	text = dirtyQuotes.ReplaceAllString(text, `$1"$3"`)
	text = dirtyFalse.ReplaceAllString(text, ` false$1`)
	text = dirtyTrue.ReplaceAllString(text, ` true$1`)
	return text
}

// filterRolePeople drops entries with an empty namepart, preventing
// artifacts like {namepart: "", role: "author"}.
func filterRolePeople(people []RolePerson) []RolePerson {
	out := make([]RolePerson, 0, len(people))
	for _, p := range people {
		if p.NamePart != "" && p.Role != "" {
			out = append(out, p)
		}
	}
	return out
}

// RolePeopleToText renders records as "key: val | key: val; key: val…".
func RolePeopleToText(people []RolePerson) string {
	items := make([]string, 0, len(people))
	for _, p := range people {
		pairs := []string{"namepart: " + p.NamePart, "role: " + p.Role}
		if p.ID != 0 {
			pairs = append(pairs, "id: "+strconv.Itoa(p.ID))
		}
		if p.NRID != "" {
			pairs = append(pairs, "nr_id: "+p.NRID)
		}
		items = append(items, strings.Join(pairs, " | "))
	}
	return strings.TrimSpace(strings.Join(items, "; "))
}
