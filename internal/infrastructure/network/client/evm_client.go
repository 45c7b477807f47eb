package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
)

// EVMClient implements the port.BlockchainClient interface for
// EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
}

// ENS registry deployment shared by mainnet and common testnets.
const ensRegistryAddress = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"

// Minimal ABI fragments for the two ENS calls the service needs.
const ensRegistryABI = `[{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"resolver","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`
const ensResolverABI = `[{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"addr","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedRegistryABI abi.ABI
	parsedResolverABI abi.ABI
	parsedENSOnce     sync.Once
)

func initParsedENSABIs() {
	parsedENSOnce.Do(func() {
		var err error
		parsedRegistryABI, err = abi.JSON(strings.NewReader(ensRegistryABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ENS registry ABI: %v", err))
		}
		parsedResolverABI, err = abi.JSON(strings.NewReader(ensResolverABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ENS resolver ABI: %v", err))
		}
	})
}

// NewEVMClient creates a new EVM client for the given network definition.
// The primary RPC URL is tried first, then any fallbacks.
func NewEVMClient(netDef entity.NetworkDefinition, connectionTimeout, rpcCallTimeout time.Duration) (port.BlockchainClient, error) {
	initParsedENSABIs()
	rpcURLs := append([]string{netDef.PrimaryRPCURL}, netDef.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		ethCli, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return &EVMClient{ethClient: ethCli, netDef: netDef, rpcCallTimeout: rpcCallTimeout}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
}

// TransactionCount returns the confirmed nonce for the address.
func (c *EVMClient) TransactionCount(ctx context.Context, address string) (uint64, error) {
	if !common.IsHexAddress(address) {
		return 0, fmt.Errorf("invalid address %q for network %s", address, c.netDef.Name)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	nonce, err := c.ethClient.NonceAt(callCtx, common.HexToAddress(address), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch transaction count for %s on %s: %w", address, c.netDef.Name, err)
	}
	return nonce, nil
}

// NativeBalance returns the native balance in wei.
func (c *EVMClient) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid address %q for network %s", address, c.netDef.Name)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	balance, err := c.ethClient.BalanceAt(callCtx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance for %s on %s: %w", address, c.netDef.Name, err)
	}
	return balance, nil
}

// ResolveName resolves an ENS name to an address: registry.resolver(node)
// followed by resolver.addr(node). A zero resolver or zero address means the
// name is not registered.
func (c *EVMClient) ResolveName(ctx context.Context, name string) (string, error) {
	node := Namehash(name)

	resolverAddr, err := c.callForAddress(ctx, parsedRegistryABI, common.HexToAddress(ensRegistryAddress), "resolver", node)
	if err != nil {
		return "", fmt.Errorf("ENS registry lookup for %s failed: %w", name, err)
	}
	if resolverAddr == (common.Address{}) {
		return "", fmt.Errorf("no ENS resolver registered for %s", name)
	}

	resolved, err := c.callForAddress(ctx, parsedResolverABI, resolverAddr, "addr", node)
	if err != nil {
		return "", fmt.Errorf("ENS resolver call for %s failed: %w", name, err)
	}
	if resolved == (common.Address{}) {
		return "", fmt.Errorf("ENS name %s resolves to the zero address", name)
	}
	return resolved.Hex(), nil
}

func (c *EVMClient) callForAddress(ctx context.Context, parsed abi.ABI, to common.Address, method string, node [32]byte) (common.Address, error) {
	callData, err := parsed.Pack(method, node)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	raw, err := c.ethClient.CallContract(callCtx, ethereum.CallMsg{To: &to, Data: callData}, nil)
	if err != nil {
		return common.Address{}, err
	}
	if len(raw) == 0 {
		return common.Address{}, nil
	}

	unpacked, err := parsed.Unpack(method, raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	if len(unpacked) == 0 {
		return common.Address{}, fmt.Errorf("%s unpack returned no data", method)
	}
	addr, ok := unpacked[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("failed to assert unpacked %s result to common.Address, got %T", method, unpacked[0])
	}
	return addr, nil
}

// Connected reports whether the RPC endpoint answers a chain-id call.
func (c *EVMClient) Connected(ctx context.Context) bool {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	_, err := c.ethClient.ChainID(callCtx)
	return err == nil
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

// Namehash computes the ENS namehash of a dot-separated name.
func Namehash(name string) [32]byte {
	var node [32]byte
	if name == "" {
		return node
	}

	labels := strings.Split(strings.ToLower(name), ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256([]byte(labels[i]))
		node = [32]byte(crypto.Keccak256(node[:], labelHash))
	}
	return node
}
