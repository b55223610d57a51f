package apps

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// PuzzleEventID marks the calendar entry that reveals the letter order
const PuzzleEventID = "puzzle-1"

const dateLayout = "2006-01-02"

// Event is one calendar entry
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Color string `json:"color"`
	Notes string `json:"notes,omitempty"`
}

var eventTemplates = []struct{ title, color string }{
	{"Vorlesung", "blue"},
	{"Abgabe", "blue"},
	{"Gruppenmeeting", "green"},
	{"Mama anrufen", "green"},
	{"Zahnarzt", "green"},
	{"Recherche", "gray"},
	{"Interview vorbereiten", "blue"},
	{"Kaffee mit Melina", "green"},
	{"Check-in", "gray"},
}

var eventTimes = []string{"08:00", "09:30", "11:00", "13:00", "14:30", "16:00", "17:30", "19:00"}

// GenerateEvents builds the agenda around today. The puzzle event sits on
// today; every other day from ten days back to forty ahead gets up to three
// entries drawn from a generator seeded by the date, so the same day always
// shows the same events.
func GenerateEvents(today time.Time) []Event {
	today = day(today)
	events := []Event{{
		ID:    PuzzleEventID,
		Title: "Nicht vergessen!!!",
		Date:  today.Format(dateLayout),
		Time:  "18:30",
		Color: "red",
		Notes: "Nimm nur, was markiert ist.\nReihenfolge: M – K – S – N – T",
	}}

	for d := today.AddDate(0, 0, -10); !d.After(today.AddDate(0, 0, 40)); d = d.AddDate(0, 0, 1) {
		if d.Equal(today) {
			continue
		}
		date := d.Format(dateLayout)
		rng := dateRand(date)
		for i := range rng.IntN(4) {
			tpl := eventTemplates[rng.IntN(len(eventTemplates))]
			events = append(events, Event{
				ID:    fmt.Sprintf("evt-%s-%d", date, i),
				Title: tpl.title,
				Date:  date,
				Time:  eventTimes[rng.IntN(len(eventTimes))],
				Color: tpl.color,
			})
		}
	}
	return events
}

func dateRand(date string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(date + "-seed"))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed>>1))
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type calendar struct {
	host     registry.Host
	today    time.Time
	month    time.Time
	selected time.Time
	events   []Event
}

func newCalendar(host registry.Host, _ types.WindowRecord) registry.Application {
	today := day(host.Now())
	return &calendar{
		host:     host,
		today:    today,
		month:    today.AddDate(0, 0, 1-today.Day()),
		selected: today,
		events:   GenerateEvents(today),
	}
}

func (c *calendar) on(d time.Time) []Event {
	key := d.Format(dateLayout)
	var out []Event
	for _, e := range c.events {
		if e.Date == key {
			out = append(out, e)
		}
	}
	return out
}

func (c *calendar) Handle(action string, params map[string]string) error {
	switch action {
	case "select":
		raw, err := param(params, "date")
		if err != nil {
			return err
		}
		d, err := time.ParseInLocation(dateLayout, raw, c.today.Location())
		if err != nil {
			return fmt.Errorf("%w: date %q: %v", registry.ErrInvalidParams, raw, err)
		}
		c.selected = d
		for _, e := range c.on(d) {
			if e.ID == PuzzleEventID {
				c.host.Puzzle().MarkOrderSeen()
			}
		}
		return nil

	case "prev":
		c.month = c.month.AddDate(0, -1, 0)
		return nil

	case "next":
		c.month = c.month.AddDate(0, 1, 0)
		return nil

	case "today":
		c.month = c.today.AddDate(0, 0, 1-c.today.Day())
		c.selected = c.today
		return nil
	}
	return unknownAction("calendar", action)
}

// grid returns the 42 cells of the month view, weeks starting on Monday
func (c *calendar) grid() []types.View {
	offset := (int(c.month.Weekday()) + 6) % 7
	start := c.month.AddDate(0, 0, -offset)

	cells := make([]types.View, 0, 42)
	for i := range 42 {
		d := start.AddDate(0, 0, i)
		cells = append(cells, types.View{
			"date":     d.Format(dateLayout),
			"day":      d.Day(),
			"in_month": d.Month() == c.month.Month(),
			"today":    d.Equal(c.today),
			"events":   len(c.on(d)),
		})
	}
	return cells
}

func (c *calendar) Render() types.View {
	return types.View{
		"kind":     "calendar",
		"month":    c.month.Format("2006-01"),
		"today":    c.today.Format(dateLayout),
		"selected": c.selected.Format(dateLayout),
		"cells":    c.grid(),
		"events":   c.on(c.selected),
	}
}
