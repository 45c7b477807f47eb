package service

import "gas_checker/internal/app/port"

// fixedRateService implements port.RateProvider with configured constants.
// The USD total is an estimate by contract; swapping in a live price feed
// only requires another RateProvider implementation.
type fixedRateService struct {
	nativeUSD      float64
	rollupDiscount float64
}

// NewFixedRateService creates a rate provider from configuration.
func NewFixedRateService(nativeUSD, rollupDiscount float64) port.RateProvider {
	return &fixedRateService{
		nativeUSD:      nativeUSD,
		rollupDiscount: rollupDiscount,
	}
}

func (s *fixedRateService) NativeUSD() float64 {
	return s.nativeUSD
}

func (s *fixedRateService) RollupDiscount() float64 {
	return s.rollupDiscount
}
