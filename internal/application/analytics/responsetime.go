package analytics

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pawhaven/platform/internal/domain/records"
)

// responseTimeCutoffMinutes bounds what counts as a reply. Gaps longer
// than 24 hours are treated as abandoned threads, not responses.
const responseTimeCutoffMinutes = 1440.0

// inferResponseMinutes estimates the mean reply latency, in minutes,
// across all chats. Within a chat, a reply pair is two chronologically
// adjacent messages from different senders; adjacency guarantees no
// third message from either party falls between them, so the second
// message is literally the first reply to the first.
func inferResponseMinutes(messages []records.MessageRecord) float64 {
	byChat := make(map[uuid.UUID][]records.MessageRecord)
	for _, m := range messages {
		byChat[m.ChatID] = append(byChat[m.ChatID], m)
	}

	var gaps []float64
	for _, chat := range byChat {
		sort.Slice(chat, func(i, j int) bool {
			return chat[i].CreatedAt.Before(chat[j].CreatedAt)
		})
		for i := 1; i < len(chat); i++ {
			prev, cur := chat[i-1], chat[i]
			if prev.SenderID == cur.SenderID {
				continue
			}
			gap := cur.CreatedAt.Sub(prev.CreatedAt).Minutes()
			if gap > responseTimeCutoffMinutes {
				continue
			}
			gaps = append(gaps, gap)
		}
	}
	return mean(gaps)
}
