package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"visiting-card-bot/constants"
	"visiting-card-bot/internal/contextstore"
	"visiting-card-bot/internal/entity"
	"visiting-card-bot/internal/extract"
	"visiting-card-bot/internal/ledger"
	"visiting-card-bot/internal/llm"
	"visiting-card-bot/internal/normalize"
	"visiting-card-bot/internal/ocr"
	"visiting-card-bot/internal/reconcile"
)

// Config tunes one deployment of the extraction pipeline.
type Config struct {
	ExtractTimeout time.Duration             // AI extraction bound, default 20s
	Profile        constants.VerticalProfile // vertical fallback seeds; zero seeds nothing
}

// Processor runs the extraction-and-reconciliation pipeline for one image:
// OCR -> normalize -> {regex, AI} extraction -> merge -> context store +
// ledger. Nothing on this path terminates the caller: AI failure degrades to
// fallbacks and a ledger failure is logged, not propagated.
type Processor struct {
	cfg       Config
	logger    *slog.Logger
	ocr       ocr.Recognizer
	extractor llm.FieldExtractor
	store     contextstore.Store
	ledger    ledger.Appender
	now       func() time.Time
}

func NewProcessor(cfg Config, rec ocr.Recognizer, fe llm.FieldExtractor, store contextstore.Store, sink ledger.Appender, logger *slog.Logger) *Processor {
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 20 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		cfg:       cfg,
		logger:    logger,
		ocr:       rec,
		extractor: fe,
		store:     store,
		ledger:    sink,
		now:       time.Now,
	}
}

// ProcessImage handles one card photo for a conversation and returns the
// reconciled card. The returned error covers only the OCR and store stages;
// everything downstream of normalization degrades instead of failing.
func (p *Processor) ProcessImage(ctx context.Context, conversationID, imagePath string) (entity.Card, error) {
	rid := uuid.New().String()
	start := time.Now()

	p.logger.Info("pipeline.process.start",
		"req_id", rid, "conversation_id", conversationID, "path", imagePath)

	fragments, err := p.ocr.Recognize(ctx, imagePath)
	if err != nil {
		p.logger.Error("pipeline.ocr.failed", "req_id", rid, "error", err)
		return entity.Card{}, fmt.Errorf("ocr recognize: %w", err)
	}
	raw := strings.Join(fragments, " ")
	clean := normalize.Clean(raw)
	p.logger.Info("pipeline.ocr.ok",
		"req_id", rid, "fragments", len(fragments), "clean_len", len(clean))

	det := extract.Deterministic(clean)

	extractCtx, cancel := context.WithTimeout(ctx, p.cfg.ExtractTimeout)
	aiFields, _, aiErr := p.extractor.ExtractFields(extractCtx, clean)
	cancel()
	if aiErr != nil {
		p.logger.Warn("pipeline.ai_extract.failed",
			"req_id", rid, "reason", string(llm.ReasonOf(aiErr)), "error", aiErr)
	} else if aiFields.IsEmpty() {
		// Distinct from failure: the model answered and found nothing.
		p.logger.Info("pipeline.ai_extract.empty", "req_id", rid)
	}

	card := reconcile.Merge(det, aiFields, aiErr, clean, p.cfg.Profile)

	if err := p.store.Put(ctx, conversationID, card); err != nil {
		p.logger.Error("pipeline.store.put_failed", "req_id", rid, "error", err)
		return card, fmt.Errorf("store card: %w", err)
	}

	row := ledger.NewRow(conversationID, card, p.now())
	if err := p.ledger.Append(ctx, row); err != nil {
		// The card is already usable for replies and follow-ups; a sink
		// outage must not fail the conversation.
		p.logger.Error("pipeline.ledger.append_failed", "req_id", rid, "error", err)
	}

	p.logger.Info("pipeline.process.ok",
		"req_id", rid,
		"conversation_id", conversationID,
		"name", card.Name,
		"company", card.Company,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return card, nil
}
