package telegram

import (
	"sync"

	"notes-backend/api/internal/prompt"
)

const defaultSubject = "General"

// chatSettings are the per-chat summary options chosen with /language and /subject.
type chatSettings struct {
	Language string
	Subject  string
}

type settingsStore struct {
	m sync.Map // chatID -> chatSettings
}

func (s *settingsStore) get(chatID int64) chatSettings {
	if v, ok := s.m.Load(chatID); ok {
		return v.(chatSettings)
	}
	return chatSettings{Language: prompt.DefaultLanguage, Subject: defaultSubject}
}

func (s *settingsStore) setLanguage(chatID int64, lang string) {
	cs := s.get(chatID)
	cs.Language = lang
	s.m.Store(chatID, cs)
}

func (s *settingsStore) setSubject(chatID int64, subject string) {
	cs := s.get(chatID)
	cs.Subject = subject
	s.m.Store(chatID, cs)
}
