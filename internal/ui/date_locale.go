package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
)

type dateOrder int

const (
	orderDMY dateOrder = iota
	orderMDY
	orderYMD
)

// userDateFormat describes how due dates are typed and shown. Due dates are
// stored in UTC and compared by calendar day, so the form works on days only.
type userDateFormat struct {
	DisplayLayout string
	Hint          string
	DateLayouts   []string
}

func newUserDateFormat(order dateOrder) userDateFormat {
	var display, hint string
	var parts [3]string
	switch order {
	case orderMDY:
		display, hint, parts = "01/02/2006", "MM/DD/YYYY", [3]string{"1", "2", "2006"}
	case orderYMD:
		display, hint, parts = "2006-01-02", "YYYY-MM-DD", [3]string{"2006", "1", "2"}
	default:
		display, hint, parts = "02/01/2006", "DD/MM/YYYY", [3]string{"2", "1", "2006"}
	}

	f := userDateFormat{DisplayLayout: display, Hint: hint}
	// "1" and "2" accept both padded and unpadded input.
	for _, sep := range []string{"/", "-", "."} {
		f.DateLayouts = append(f.DateLayouts, strings.Join(parts[:], sep))
	}
	return f
}

func detectUserDateFormat() userDateFormat {
	return newUserDateFormat(orderForTag(detectLocaleTag()))
}

func orderForTag(tag language.Tag) dateOrder {
	if tag == language.Und {
		return orderDMY
	}
	region, conf := tag.Region()
	if conf == language.No {
		return orderDMY
	}
	switch region.String() {
	case "US":
		return orderMDY
	case "CA", "CN", "JP", "KR", "HU", "LT":
		return orderYMD
	default:
		return orderDMY
	}
}

// detectLocaleTag reads LC_ALL, LC_TIME and LANG in that order, ignoring
// encodings and modifiers such as "en_US.UTF-8@euro".
func detectLocaleTag() language.Tag {
	for _, env := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		raw := strings.TrimSpace(os.Getenv(env))
		raw, _, _ = strings.Cut(raw, ".")
		raw, _, _ = strings.Cut(raw, "@")
		if raw == "" || raw == "C" || raw == "POSIX" {
			continue
		}
		if tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-")); err == nil {
			return tag
		}
	}
	return language.Und
}

func (m Model) formatDueDate(dueAt time.Time) string {
	layout := m.dateFormat.DisplayLayout
	if layout == "" {
		layout = time.DateOnly
	}
	return dueAt.UTC().Format(layout)
}

func (m Model) formatCreatedAt(ts time.Time) string {
	layout := m.dateFormat.DisplayLayout
	if layout == "" {
		layout = time.DateOnly
	}
	return ts.UTC().Format(layout + " 15:04 UTC")
}

func (m Model) dueDatePlaceholder() string {
	hint := m.dateFormat.Hint
	if hint == "" {
		hint = "YYYY-MM-DD"
	}
	return fmt.Sprintf("Due Date (%s, empty for none)", hint)
}

// parseDueDateInput reads a typed due date. A calendar day keeps the time of
// day of previous when there is one, otherwise it lands on midnight UTC.
// RFC3339 input is taken as is.
func (m Model) parseDueDateInput(raw string, previous *time.Time) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		v := t.UTC()
		return &v, nil
	}

	layouts := append(append([]string{}, m.dateFormat.DateLayouts...), time.DateOnly)
	for _, layout := range layouts {
		day, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		var clock time.Duration
		if previous != nil {
			p := previous.UTC()
			clock = p.Sub(time.Date(p.Year(), p.Month(), p.Day(), 0, 0, 0, 0, time.UTC))
		}
		v := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).Add(clock)
		return &v, nil
	}

	hint := m.dateFormat.Hint
	if hint == "" {
		hint = "YYYY-MM-DD"
	}
	return nil, fmt.Errorf("due date must match %s, YYYY-MM-DD or RFC3339", hint)
}
