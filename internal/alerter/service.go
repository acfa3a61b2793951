package alerter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/merahputih/kafepos/internal/events"
	"github.com/merahputih/kafepos/internal/kafkax"
	"github.com/merahputih/kafepos/internal/ledger"
	"github.com/merahputih/kafepos/internal/notify"
	"github.com/merahputih/kafepos/internal/redisx"
)

// Service mengawasi event pergerakan stok dan menaikkan STOCK_ALERT untuk
// Admin saat bahan jatuh di bawah ambang minimum. Alert di-throttle per bahan
// lewat Redis supaya satu penurunan tidak membanjiri notifikasi.
type Service struct {
	Materials   *ledger.Repo
	Notifier    *notify.Service
	Redis       *redis.Client
	ServiceName string
	Log         *slog.Logger
}

// HandleStockMoved dipasang sebagai handler consumer untuk topic
// stock.debited dan stock.credited.
func (s *Service) HandleStockMoved(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// dedup per event_id
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}

	movements, err := stockMovements(env)
	if err != nil {
		return err
	}
	for _, mv := range movements {
		if err := s.checkMaterial(ctx, mv.MaterialID); err != nil {
			return err
		}
	}

	// tandai terproses hanya setelah semua bahan dicek; gagal di tengah
	// membiarkan key kosong sehingga redelivery mengulang dari awal
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	return nil
}

// stockMovements mengekstrak pergerakan stok dari envelope; event type lain
// menghasilkan daftar kosong.
func stockMovements(env events.Envelope) ([]events.StockMovement, error) {
	switch env.EventType {
	case events.EventStockDebited:
		p, err := kafkax.UnwrapPayload[events.StockDebitedPayload](env.Payload)
		if err != nil {
			return nil, err
		}
		return p.Movements, nil
	case events.EventStockCredited:
		p, err := kafkax.UnwrapPayload[events.StockCreditedPayload](env.Payload)
		if err != nil {
			return nil, err
		}
		return []events.StockMovement{p.Movement}, nil
	default:
		return nil, nil
	}
}

func (s *Service) checkMaterial(ctx context.Context, materialID string) error {
	mat, err := s.Materials.Get(ctx, materialID)
	if err != nil {
		// bahan bisa saja sudah dihapus setelah event terbit
		s.Log.Warn("material lookup failed", "bahan_id", materialID, "error", err)
		return nil
	}
	if !mat.Low() {
		return nil
	}

	akey := fmt.Sprintf(redisx.KeyStockAlert, mat.ID)
	if exists, _ := redisx.Exists(ctx, s.Redis, akey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, akey, "1", redisx.TTLStockAlert).Err()

	data, _ := json.Marshal(map[string]any{
		"bahan_id":      mat.ID,
		"nama_bahan":    mat.Name,
		"stok_saat_ini": mat.CurrentStock,
		"stok_minimum":  mat.MinimumStock,
		"satuan":        mat.Unit,
	})
	msg := fmt.Sprintf("Stok %s tinggal %g %s, di bawah minimum %g %s.",
		mat.Name, mat.CurrentStock, mat.Unit, mat.MinimumStock, mat.Unit)
	if err := s.Notifier.CreateForRole(ctx, "Admin", notify.TypeStockAlert, "Stok Menipis", msg, data); err != nil {
		return err
	}
	s.Log.Info("stock alert raised", "bahan_id", mat.ID, "stok", mat.CurrentStock)
	return nil
}
