package service

import (
	"bench-test/internal/config"
)

type ServiceContext struct {
	Gateway         Gateway
	GPTEClient      *GPTEClient
	BenchmarkRunner *BenchmarkRunner
}

func NewServiceContext(cfg *config.Config) *ServiceContext {
	gateway := NewGormGateway()
	client := NewGPTEClient(cfg.GPTEngineer.RequestTimeoutSec)

	return &ServiceContext{
		Gateway:         gateway,
		GPTEClient:      client,
		BenchmarkRunner: NewBenchmarkRunner(gateway, client),
	}
}
