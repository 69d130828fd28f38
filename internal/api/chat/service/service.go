package chatService

import (
	"sync"
	"time"

	"HealthifyChat/internal/api/chat"
	chatRepository "HealthifyChat/internal/api/chat/repository"
	"HealthifyChat/internal/entity"
	"HealthifyChat/pkg/nlp"
	"HealthifyChat/pkg/session"
	"HealthifyChat/pkg/templates"
	"HealthifyChat/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IChatService interface {
	HandleTurn(ctx context.Context, sessionID string, message string) (chat.TurnResult, error)
	GetHistory(ctx context.Context, sessionID string, limit int) ([]entity.ChatHistory, error)
	GetContext(ctx context.Context, sessionID string) (session.Context, error)
	ClearContext(ctx context.Context, sessionID string) bool
	RefreshVocabulary(ctx context.Context) error
	// Drain waits for transcript writes that are still in flight.
	Drain()
}

type Option func(*chatService)

func WithClassifier(classifier nlp.IClassifier) Option {
	return func(s *chatService) {
		s.classifier = classifier
	}
}

func WithExtractor(extractor nlp.IExtractor) Option {
	return func(s *chatService) {
		s.extractor = extractor
	}
}

func WithCorrector(corrector nlp.ICorrector) Option {
	return func(s *chatService) {
		s.corrector = corrector
	}
}

func WithSelector(selector templates.ISelector) Option {
	return func(s *chatService) {
		s.selector = selector
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *chatService) {
		s.now = now
	}
}

func WithTranscriptTimeout(d time.Duration) Option {
	return func(s *chatService) {
		if d > 0 {
			s.transcriptTimeout = d
		}
	}
}

type chatService struct {
	log               *logrus.Logger
	chatRepository    chatRepository.Repository
	sessions          *session.Manager
	utils             utils.IUtils
	classifier        nlp.IClassifier
	extractor         nlp.IExtractor
	corrector         nlp.ICorrector
	selector          templates.ISelector
	now               func() time.Time
	transcriptTimeout time.Duration

	vocabMu    sync.RWMutex
	vocabulary []string

	pending sync.WaitGroup
}

func New(
	log *logrus.Logger,
	cr chatRepository.Repository,
	sessions *session.Manager,
	utils utils.IUtils,
	opts ...Option,
) IChatService {
	s := &chatService{
		log:               log,
		chatRepository:    cr,
		sessions:          sessions,
		utils:             utils,
		classifier:        nlp.NewClassifier(),
		extractor:         nlp.NewExtractor(nlp.KeywordTagger{}),
		selector:          templates.New(),
		now:               time.Now,
		transcriptTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.corrector == nil {
		corrector := nlp.NewSpellingCorrector(nlp.DefaultCorrectionThreshold, nlp.ReservedWords()...)
		corrector.OnCorrect = func(c nlp.Correction) {
			s.log.WithFields(logrus.Fields{
				"from":  c.From,
				"to":    c.To,
				"score": c.Score,
			}).Debug("Corrected food spelling")
		}
		s.corrector = corrector
	}

	return s
}

func (s *chatService) currentVocabulary() []string {
	s.vocabMu.RLock()
	defer s.vocabMu.RUnlock()
	return s.vocabulary
}

func (s *chatService) Drain() {
	s.pending.Wait()
}
