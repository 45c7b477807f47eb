package utils

import (
	"math/big"
)

// NativeDecimals is the decimal count of ETH on both supported chains.
const NativeDecimals = 18

// WeiToNative converts an amount in the smallest native unit into whole
// native-currency units. A nil amount converts to 0.
func WeiToNative(amount *big.Int) float64 {
	return UnitsToNative(amount, NativeDecimals)
}

// UnitsToNative converts an amount in the smallest unit to whole units for
// the given decimal count.
func UnitsToNative(amount *big.Int, decimals uint8) float64 {
	if amount == nil || amount.Sign() == 0 {
		return 0
	}

	amountFloat := new(big.Float).SetInt(amount)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))

	value, _ := new(big.Float).Quo(amountFloat, divisor).Float64()
	return value
}
