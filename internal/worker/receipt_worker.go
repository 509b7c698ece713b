package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: loads the sale and renders its
// PDF receipt to local storage. Rendering failures never touch the sale —
// the job is parked on the DLQ instead.

import (
	"context"
	"encoding/json"

	"github.com/fdestra28/kasirtta-sub000/internal/infra"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SaleID string `json:"sale_id"`
}

type ReceiptWorker struct {
	sales       repository.SaleRepository
	storeName   string
	storagePath string
}

func NewReceiptWorker(sales repository.SaleRepository, storeName, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{sales: sales, storeName: storeName, storagePath: storagePath}
}

// Process renders the PDF receipt for a committed sale.
func (w *ReceiptWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		SendToDLQ(ctx, rdb, QueueReceipt, "receipt", raw, "invalid payload: "+err.Error())
		return
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale id")
		SendToDLQ(ctx, rdb, QueueReceipt, "receipt", raw, "invalid sale id")
		return
	}

	sale, err := w.sales.FindByID(ctx, saleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: sale not found")
		SendToDLQ(ctx, rdb, QueueReceipt, "receipt", raw, "sale not found")
		return
	}

	path, err := infra.GenerateReceiptPDF(sale, w.storeName, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("code", sale.Code).Msg("receipt_worker: failed to render receipt")
		SendToDLQ(ctx, rdb, QueueReceipt, "receipt", raw, "render failed: "+err.Error())
		return
	}

	log.Info().Str("code", sale.Code).Str("path", path).Msg("receipt_worker: receipt rendered")
}
