package apps

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/scheduler"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// Reply delay bounds for every chat bot
const (
	ReplyDelayMin = 600 * time.Millisecond
	ReplyDelayMax = 1200 * time.Millisecond
)

const defaultChat = "mama"

// ChatMessage is one bubble in a conversation
type ChatMessage struct {
	From  string `yaml:"from" json:"from"`
	Text  string `yaml:"text" json:"text,omitempty"`
	Image string `yaml:"image" json:"image,omitempty"`
	At    string `yaml:"at" json:"at"`
}

type chatBot struct {
	Replies []string `yaml:"replies"`
	// Hint is always the answer when set; the first one marks V
	Hint string `yaml:"hint"`
}

type chatContact struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Avatar   string        `yaml:"avatar"`
	Bot      *chatBot      `yaml:"bot"`
	Messages []ChatMessage `yaml:"messages"`
}

type chatScript struct {
	Fallback chatBot       `yaml:"fallback"`
	Contacts []chatContact `yaml:"contacts"`
}

// chats is the workspace-wide conversation state. It is shared by every
// Messages window and outlives them so late replies still land.
type chats struct {
	fallback  chatBot
	contacts  []chatContact
	typing    map[string]int
	hintGiven bool
}

func newChats() any {
	var script chatScript
	loadContent("messages.yaml", &script)
	return &chats{
		fallback: script.Fallback,
		contacts: script.Contacts,
		typing:   make(map[string]int),
	}
}

func (c *chats) contact(id string) *chatContact {
	for i := range c.contacts {
		if c.contacts[i].ID == id {
			return &c.contacts[i]
		}
	}
	return nil
}

// reply picks the bot answer for a contact and reports whether it is the
// first hint
func (c *chats) reply(ct *chatContact, pick func(n int) int) (string, bool) {
	bot := c.fallback
	if ct.Bot != nil {
		bot = *ct.Bot
	}
	if bot.Hint != "" {
		first := !c.hintGiven
		c.hintGiven = true
		return bot.Hint, first
	}
	if len(bot.Replies) == 0 {
		return "ok", false
	}
	return bot.Replies[pick(len(bot.Replies))], false
}

type messages struct {
	host    registry.Host
	chats   *chats
	current string
}

func newMessages(host registry.Host, _ types.WindowRecord) registry.Application {
	return &messages{
		host:    host,
		chats:   host.Shared("messages", newChats).(*chats),
		current: defaultChat,
	}
}

func (m *messages) Handle(action string, params map[string]string) error {
	switch action {
	case "select":
		id, err := param(params, "contact")
		if err != nil {
			return err
		}
		if m.chats.contact(id) == nil {
			return fmt.Errorf("%w: no contact %q", registry.ErrInvalidParams, id)
		}
		m.current = id
		return nil

	case "send":
		text := clean(params["text"])
		if text == "" {
			return fmt.Errorf("%w: text is required", registry.ErrInvalidParams)
		}
		m.send(m.current, text)
		return nil
	}
	return unknownAction("messages", action)
}

// send appends the visitor's message and schedules the bot reply. The reply
// is detached from the window and bound to the conversation it was sent in.
func (m *messages) send(id, text string) {
	ct := m.chats.contact(id)
	if ct == nil {
		return
	}
	ct.Messages = append(ct.Messages, ChatMessage{From: "me", Text: text, At: m.host.Now().Format("15:04")})
	m.chats.typing[id]++

	delay := ReplyDelayMin + rand.N(ReplyDelayMax-ReplyDelayMin+1)
	chats, host := m.chats, m.host
	host.Scheduler().After(scheduler.Detached, delay, func() {
		ct := chats.contact(id)
		if ct == nil {
			return
		}
		text, hint := chats.reply(ct, rand.IntN)
		ct.Messages = append(ct.Messages, ChatMessage{From: "them", Text: text, At: host.Now().Format("15:04")})
		if chats.typing[id] > 0 {
			chats.typing[id]--
		}
		if hint {
			host.Puzzle().MarkVFound()
		}
	})
}

func (m *messages) Render() types.View {
	list := make([]types.View, 0, len(m.chats.contacts))
	for _, ct := range m.chats.contacts {
		entry := types.View{"id": ct.ID, "name": ct.Name, "avatar": ct.Avatar}
		if n := len(ct.Messages); n > 0 {
			last := ct.Messages[n-1]
			entry["last"] = last.Text
			entry["at"] = last.At
		}
		list = append(list, entry)
	}

	view := types.View{
		"kind":     "messages",
		"contacts": list,
		"current":  m.current,
	}
	if ct := m.chats.contact(m.current); ct != nil {
		view["thread"] = append([]ChatMessage{}, ct.Messages...)
		view["typing"] = m.chats.typing[m.current] > 0
	}
	return view
}
