package handlers

import (
	"github.com/rogerio-castellano/stocksync/internal/alerts"
	"github.com/rogerio-castellano/stocksync/internal/auth"
	"github.com/rogerio-castellano/stocksync/internal/inventory"
	"github.com/rogerio-castellano/stocksync/internal/orders"
	repo "github.com/rogerio-castellano/stocksync/internal/repo"
	"github.com/rogerio-castellano/stocksync/internal/stockflow"
)

var (
	ledger       *inventory.Ledger
	tracker      *orders.Tracker
	alertEngine  *alerts.Engine
	stockService *stockflow.Service
	metricsRepo  repo.MetricsRepository

	signer      *auth.Signer
	revocations auth.Revocations
)

func SetLedger(l *inventory.Ledger) {
	ledger = l
}

func SetTracker(t *orders.Tracker) {
	tracker = t
}

func SetAlertEngine(e *alerts.Engine) {
	alertEngine = e
}

func SetStockService(s *stockflow.Service) {
	stockService = s
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetSigner(s *auth.Signer) {
	signer = s
}

func SetRevocations(r auth.Revocations) {
	revocations = r
}

// SetStore wires every component over one document store.
func SetStore(store repo.DocumentStore) {
	SetLedger(inventory.NewLedger(store))
	SetTracker(orders.NewTracker(store))
	SetAlertEngine(alerts.NewEngine(store))
	SetStockService(stockflow.NewService(ledger, alertEngine))
	SetMetricsRepo(repo.NewStoreMetricsRepository(store))
}
