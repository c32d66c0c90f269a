package services

import (
	"time"

	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup purges session rows past their expiry. Scheduled
// hourly from main.
func (v *Auth) DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now cleaning up expired sessions...")

	tx := v.db.Delete(&models.Session{}, "expired_at < ?", time.Now())
	if tx.Error != nil {
		log.Error().Err(tx.Error).Msg("An error occurred when cleaning up expired sessions...")
		return
	}

	log.Debug().Int64("affected", tx.RowsAffected).Msg("Clean up expired sessions accomplished.")
}
