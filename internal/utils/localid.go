package utils

import (
	"github.com/google/uuid"

	"github.com/ltemarine/shiplog/models"
)

// NewLocalEntryID mints an identifier for an entry that could not be created
// in the remote store. The prefix keeps locally minted ids recognisable so
// the delete path can skip the remote call for records that never left the
// device.
func NewLocalEntryID() string {
	return models.LocalIDPrefix + uuid.NewString()
}
