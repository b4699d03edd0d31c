package portfolio

import (
	"testing"

	"coinwatch/internal/models"
	"coinwatch/internal/testutil"
)

func TestTransactionLogTotalInvested(t *testing.T) {
	log := NewTransactionLog(nil)
	testutil.AssertDecimal(t, "empty", log.TotalInvested(), "0")

	log.Append(testutil.NewTestTransaction("BTC", models.TransactionTypeBuy, "0.1", "50000"))
	log.Append(testutil.NewTestTransaction("BTC", models.TransactionTypeSell, "0.05", "55000"))
	log.Append(testutil.NewTestTransaction("ETH", models.TransactionTypeBuy, "2", "1500"))

	testutil.AssertDecimal(t, "invested", log.TotalInvested(), "8000")
	if log.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", log.Len())
	}
}

func TestTransactionLogRecomputesOnLoad(t *testing.T) {
	entries := []models.Transaction{
		testutil.NewTestTransaction("BTC", models.TransactionTypeBuy, "1", "100"),
		testutil.NewTestTransaction("BTC", models.TransactionTypeBuy, "1", "200"),
		testutil.NewTestTransaction("BTC", models.TransactionTypeSell, "2", "300"),
	}
	log := NewTransactionLog(entries)

	testutil.AssertDecimal(t, "invested", log.TotalInvested(), "300")

	all := log.All()
	for i := range entries {
		if all[i].ID != entries[i].ID {
			t.Errorf("entry %d out of order", i)
		}
	}
	all[0].ID = "changed"
	if log.All()[0].ID == "changed" {
		t.Error("All() must return a copy")
	}
}
