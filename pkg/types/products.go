package types

import "slices"

// Vendor product ids group devices into capability sets. The parameter lists
// below are what the vendor app polls for each set; "special" parameters are
// fetched with a separate call and union-merged into the snapshot.
var (
	acProductIDs = []string{
		"000000000000000000000000c0620000",
		"0000000000000000000000002a4e0000",
	}
	heatPumpProductIDs = []string{
		"000000000000000000000000c3aa0000",
	}
)

var acParams = []string{
	"ac_astheat",
	"ac_clean",
	"ac_hdir",
	"ac_health",
	"ac_mark",
	"ac_mode",
	"ac_slp",
	"ac_vdir",
	"ecomode",
	"err_flag",
	"mldprf",
	"pwr",
	"scrdisp",
	"temp",
	"envtemp",
	"pwrlimit",
	"pwrlimitswitch",
	"childlock",
	"comfwind",
	"new_type",
	"ac_tempconvert",
	"sleepdiy",
	"ac_errcode1",
	"tempunit",
	"tenelec",
}

var acSpecialParams = []string{"mode"}

var heatPumpParams = []string{
	"ac_errcode1",
	"ac_mode",
	"ac_pwr",
	"ac_temp",
	"ecomode",
	"err_flag",
	"hp_auto_wtemp",
	"hp_fast_hotwater",
	"hp_hotwater_temp",
	"hp_pwr",
	"qtmode",
}

var heatPumpSpecialParams = []string{"hp_water_tank_temp"}

// ParamsForProduct returns the standard parameter list polled for a product,
// or nil for unknown products (which are queried for everything).
func ParamsForProduct(productID string) []string {
	if slices.Contains(acProductIDs, productID) {
		return acParams
	}
	if slices.Contains(heatPumpProductIDs, productID) {
		return heatPumpParams
	}
	return nil
}

// SpecialParamsForProduct returns the extra parameters that require a
// separate query, or nil if the product has none.
func SpecialParamsForProduct(productID string) []string {
	if slices.Contains(acProductIDs, productID) {
		return acSpecialParams
	}
	if slices.Contains(heatPumpProductIDs, productID) {
		return heatPumpSpecialParams
	}
	return nil
}

func ProductDisplayName(productID string) string {
	if slices.Contains(acProductIDs, productID) {
		return "AUX Air Conditioner"
	}
	if slices.Contains(heatPumpProductIDs, productID) {
		return "AUX Heat Pump"
	}
	return "Unknown"
}
