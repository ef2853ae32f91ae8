package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsCreated counts successfully created tickets.
	TicketsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_tickets_created_total",
		Help: "Total number of tickets created.",
	})

	// TicketsClosed counts closed tickets.
	TicketsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_tickets_closed_total",
		Help: "Total number of tickets closed.",
	})

	// TranscriptsGenerated counts generated transcript artifacts, both from
	// closes and from explicit transcript requests.
	TranscriptsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_transcripts_generated_total",
		Help: "Total number of transcripts generated.",
	})

	// HandlerErrors counts errors that reached the interaction dispatcher,
	// labelled by the command or component that failed.
	HandlerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_handler_errors_total",
		Help: "Total number of interaction handler errors.",
	}, []string{"handler"})
)
