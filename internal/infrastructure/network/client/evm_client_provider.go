package client

import (
	"fmt"
	"sync"
	"time"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
	"gas_checker/internal/infrastructure/configloader"
)

const defaultProviderConnectionTimeout = 10 * time.Second

// evmClientProvider implements the port.BlockchainClientProvider interface.
// Clients are stateless beyond their connection and live for the process
// lifetime, so one instance per network is created and reused.
type evmClientProvider struct {
	clients           map[string]port.BlockchainClient
	mu                sync.Mutex
	logger            port.Logger
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(cfg *configloader.Config, log port.Logger) port.BlockchainClientProvider {
	return &evmClientProvider{
		clients:           make(map[string]port.BlockchainClient),
		logger:            log,
		connectionTimeout: defaultProviderConnectionTimeout,
		rpcCallTimeout:    time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second,
	}
}

// GetClient retrieves a blockchain client for the given network definition,
// dialing it on first use and caching it afterwards.
func (p *evmClientProvider) GetClient(netDef entity.NetworkDefinition) (port.BlockchainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	clientKey := netDef.Identifier
	if existing, exists := p.clients[clientKey]; exists {
		return existing, nil
	}

	p.logger.Info("Creating new EVM client", "network", netDef.Name, "rpc_primary", netDef.PrimaryRPCURL)
	newClient, err := NewEVMClient(netDef, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "network", netDef.Name, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	p.clients[clientKey] = newClient
	p.logger.Info("Successfully created and cached new EVM client", "network", netDef.Name)
	return newClient, nil
}
