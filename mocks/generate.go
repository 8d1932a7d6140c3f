package mocks

//go:generate mockgen -destination=./mock_exchange.go -package=mocks github.com/rxtech-lab/trendscout/internal/exchange Gateway
//go:generate mockgen -destination=./mock_marketdata.go -package=mocks github.com/rxtech-lab/trendscout/internal/marketdata Provider
//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/rxtech-lab/trendscout/internal/strategy Evaluator
