package chatService

import (
	chatRepository "HealthifyChat/internal/api/chat/repository"
	"HealthifyChat/internal/entity"
	contextPkg "HealthifyChat/pkg/context"
	"HealthifyChat/pkg/nlp"
	"HealthifyChat/pkg/session"
	"HealthifyChat/pkg/templates"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const transcriptReplayLimit = 5

func (s *chatService) exercise(u nlp.Utterance) outcome {
	switch {
	case u.HasAnyPhrase(nlp.WeightLossPhrases...):
		topic := session.TopicWeightLoss
		return outcome{reply: weightLossPlan, patch: session.Patch{ExerciseTopic: &topic}}
	case u.HasAnyPhrase(nlp.WeightGainPhrases...):
		topic := session.TopicWeightGain
		return outcome{reply: weightGainPlan, patch: session.Patch{ExerciseTopic: &topic}}
	default:
		return outcome{reply: formatExercises(s.sampleExercises(exercisePicks))}
	}
}

// sampleExercises picks n distinct catalog entries with a partial
// Fisher-Yates shuffle.
func (s *chatService) sampleExercises(n int) []exercise {
	pool := append([]exercise{}, exerciseCatalog...)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + s.selector.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func (s *chatService) dietTip(u nlp.Utterance) outcome {
	for _, tip := range foodTips {
		if u.HasPhrase(tip.Food) {
			return outcome{reply: tip.Text}
		}
	}
	return outcome{reply: s.selector.Choose(templates.DietTip)}
}

func (s *chatService) faq(ctx context.Context, histories chatRepository.HistoryStore, sessionID string, u nlp.Utterance) outcome {
	if !u.HasAnyPhrase(nlp.HistoryPhrases...) {
		return outcome{reply: capabilityList}
	}

	items, err := histories.GetChatHistoryBySession(ctx, sessionID, transcriptReplayLimit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to load transcript, replying as if empty")
		items = []entity.ChatHistory{}
	}

	return outcome{reply: formatTranscript(items)}
}
