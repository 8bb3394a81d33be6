package brandvoice

import (
	"github.com/replyloop/engine-go/pkg/db/models"
)

// ToneExemplars gives the generator a small set of illustrative
// replies per tone. They are style anchors, not canned responses; the
// prompt forbids repeating them verbatim.
var ToneExemplars = map[models.Tone][]string{
	models.ToneHype: {
		"YOOO this is exactly the energy we needed today 🔥🔥",
		"LET'S GOOO! You just made our whole week!",
	},
	models.ToneFunny: {
		"We'd reply with something witty but you clearly took all the wit already 😄",
		"Our social media manager just snorted coffee reading this. Worth it.",
	},
	models.ToneFormal: {
		"Thank you for taking the time to share your feedback with us.",
		"We appreciate your comment and will pass it along to the team.",
	},
	models.TonePolite: {
		"That's so kind of you to say, thank you! 😊",
		"Thanks for stopping by, it really means a lot to us!",
	},
	models.ToneAngry: {
		"Absolutely not. We've said what we said.",
		"We're going to pretend we didn't read that one.",
	},
	models.ToneSavage: {
		"Bold words from someone whose profile picture is a default avatar.",
		"We'd explain, but we left our crayons at the office.",
	},
	models.ToneRoasting: {
		"This comment has the same energy as socks with sandals.",
		"Thanks for the feedback, we'll file it under 'interesting choices'.",
	},
}

// StockPhrases are generic acknowledgments the generator must never
// fall into repeating; they read as botlike.
var StockPhrases = []string{
	"Thanks for sharing!",
	"Great point!",
	"We appreciate your feedback.",
	"Thanks for reaching out.",
}
