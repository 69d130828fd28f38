package chatService

import (
	"errors"
	"fmt"
	"strings"

	"HealthifyChat/internal/api/chat"
	"HealthifyChat/internal/entity"
	contextPkg "HealthifyChat/pkg/context"
	"HealthifyChat/pkg/log"
	"HealthifyChat/pkg/nlp"
	"HealthifyChat/pkg/session"
	"HealthifyChat/pkg/templates"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// outcome is the reply of one intent handler plus what it attaches to the
// session. Follow-ups keep the previous intent and entities.
type outcome struct {
	reply    string
	patch    session.Patch
	followup bool
}

func (s *chatService) HandleTurn(ctx context.Context, sessionID string, message string) (res chat.TurnResult, err error) {
	requestID := contextPkg.GetRequestID(ctx)
	if sessionID == "" {
		sessionID = chat.DefaultSessionID
	}

	text := strings.TrimSpace(message)
	if text == "" {
		return chat.TurnResult{
			SessionID: sessionID,
			Intent:    nlp.IntentEmpty,
			Entities:  nlp.NewEntityBag(),
			Reply:     emptyMessageReply,
			Timestamp: s.now(),
		}, nil
	}

	ctx = contextPkg.WithSessionID(ctx, sessionID)

	var turn *session.Turn
	defer func() {
		if r := recover(); r != nil {
			if turn != nil {
				turn.Release()
			}
			traceID := log.ErrorWithTraceID(s.log, log.Fields{
				"request_id": requestID,
				"session_id": sessionID,
				"panic":      fmt.Sprint(r),
			}, "Recovered panic while resolving chat turn")
			res = chat.TurnResult{}
			err = fmt.Errorf("trace %s: %w", traceID, chat.ErrTurnFailed)
		}
	}()

	parsed := s.analyse(ctx, text)
	turn = s.sessions.Begin(ctx, sessionID)

	intent, entities, reply, err := s.resolve(ctx, turn, parsed)
	if err != nil {
		turn.Release()
		traceID := log.ErrorWithTraceID(s.log, log.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}, "Failed to resolve chat turn")
		return chat.TurnResult{}, fmt.Errorf("trace %s: %w", traceID, chat.ErrTurnFailed)
	}
	turn.Commit()

	now := s.now()
	s.saveTranscript(requestID, entity.ChatHistory{
		SessionID: sessionID,
		Message:   message,
		Reply:     reply,
		Intent:    intent.String(),
		CreatedAt: now,
	})

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"intent":     intent.String(),
	}).Debug("Resolved chat turn")

	return chat.TurnResult{
		SessionID: sessionID,
		Intent:    intent,
		Entities:  entities,
		Reply:     reply,
		Timestamp: now,
	}, nil
}

// analysis is the session independent part of a turn. It runs before the
// session lock is taken since the tagger may call out to Gemini.
type analysis struct {
	intent    nlp.Intent
	entities  nlp.EntityBag
	utterance nlp.Utterance
}

func (s *chatService) analyse(ctx context.Context, text string) analysis {
	corrected := s.corrector.Correct(text, s.currentVocabulary())
	return analysis{
		intent:    s.classifier.Classify(corrected),
		entities:  s.extractor.Extract(ctx, corrected),
		utterance: nlp.NewUtterance(corrected),
	}
}

func (s *chatService) resolve(ctx context.Context, turn *session.Turn, parsed analysis) (nlp.Intent, nlp.EntityBag, string, error) {
	intent, entities, u := parsed.intent, parsed.entities, parsed.utterance

	repo, err := s.chatRepository.NewClient(false)
	if err != nil {
		return "", nlp.EntityBag{}, "", fmt.Errorf("open chat repository: %w", err)
	}
	planner := NewPlanner(s.log, repo.Foods)
	current := turn.Context()

	var out outcome
	switch intent {
	case nlp.IntentFoodRecommendation:
		out = s.recommend(ctx, planner, u, entities)
	case nlp.IntentContextFollowup:
		out = s.followUp(ctx, planner, repo.Foods, current, u)
	case nlp.IntentFoodQuery:
		out = s.foodQuery(ctx, repo.Foods, u, entities)
	case nlp.IntentExercise:
		out = s.exercise(u)
	case nlp.IntentDietTip:
		out = s.dietTip(u)
	case nlp.IntentFAQ:
		out = s.faq(ctx, repo.Histories, current.SessionID, u)
	case nlp.IntentHydration:
		out.reply = s.selector.Choose(templates.Hydration)
	case nlp.IntentBMIBMR:
		out.reply = s.selector.Choose(templates.BMIBMR)
	case nlp.IntentGreeting:
		out.reply = s.selector.Choose(templates.Greeting)
	case nlp.IntentGoodbye:
		out.reply = s.selector.Choose(templates.Goodbye)
	default:
		out.reply = s.selector.Choose(templates.Fallback)
	}

	if out.followup {
		turn.Update(out.patch)
		turn.AppendHistory(intent, entities)
	} else {
		turn.Save(intent, entities, out.patch)
	}

	return intent, entities, out.reply, nil
}

// saveTranscript writes the exchange in the background. Failures are logged
// and dropped.
func (s *chatService) saveTranscript(requestID string, history entity.ChatHistory) {
	s.pending.Add(1)

	go func() {
		defer s.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"panic":      fmt.Sprint(r),
				}).Error("Recovered panic while saving chat transcript")
			}
		}()

		ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), s.transcriptTimeout)
		defer cancel()

		id, err := s.utils.NewULIDFromTimestamp(history.CreatedAt)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate ULID")
			return
		}
		history.ID = id

		repo, err := s.chatRepository.NewClient(false)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to create new client")
			return
		}

		if err := repo.Histories.CreateChatHistory(ctx, history); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": history.SessionID,
				"error":      err.Error(),
			}).Warn("Failed to save chat transcript")
		}
	}()
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string, limit int) ([]entity.ChatHistory, error) {
	requestID := contextPkg.GetRequestID(ctx)
	if sessionID == "" {
		sessionID = chat.DefaultSessionID
	}
	switch {
	case limit <= 0:
		limit = chat.DefaultHistoryLimit
	case limit > chat.MaxHistoryLimit:
		limit = chat.MaxHistoryLimit
	}

	repo, err := s.chatRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	histories, err := repo.Histories.GetChatHistoryBySession(ctx, sessionID, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to get chat history")
		return nil, errors.Join(chat.ErrHistoryUnavailable, err)
	}

	return histories, nil
}

func (s *chatService) GetContext(ctx context.Context, sessionID string) (session.Context, error) {
	if sessionID == "" {
		sessionID = chat.DefaultSessionID
	}
	c, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return session.Context{}, chat.ErrSessionNotFound
	}
	return c, nil
}

func (s *chatService) ClearContext(ctx context.Context, sessionID string) bool {
	if sessionID == "" {
		sessionID = chat.DefaultSessionID
	}
	cleared := s.sessions.Clear(ctx, sessionID)

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": sessionID,
		"cleared":    cleared,
	}).Info("Cleared chat session context")

	return cleared
}

// RefreshVocabulary reloads the food names used by the spelling corrector.
// The previous list is kept when the store fails.
func (s *chatService) RefreshVocabulary(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatRepository.NewClient(false)
	if err != nil {
		return err
	}

	names, err := repo.Foods.GetAllFoodNames(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to load food vocabulary, keeping previous list")
		return err
	}

	vocabulary := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		vocabulary = append(vocabulary, n)
	}

	s.vocabMu.Lock()
	s.vocabulary = vocabulary
	s.vocabMu.Unlock()

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"foods":      len(vocabulary),
	}).Info("Loaded food vocabulary")

	return nil
}
