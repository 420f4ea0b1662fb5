package storage

import (
	"os"
	"testing"

	"github.com/username/nestegg/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}
