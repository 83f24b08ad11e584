package memory

import (
	"testing"

	"github.com/mmynk/groupledger/internal/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	storagetest.Run(t, New())
}
