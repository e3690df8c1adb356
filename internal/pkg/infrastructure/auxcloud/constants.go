package auxcloud

import "fmt"

type Region string

const (
	RegionEU  Region = "eu"
	RegionUSA Region = "usa"
	RegionCN  Region = "cn"
)

// ParseRegion validates a configured region name.
func ParseRegion(s string) (Region, error) {
	switch Region(s) {
	case RegionEU, RegionUSA, RegionCN:
		return Region(s), nil
	}
	return "", fmt.Errorf("unknown region %q, accepted values are eu, usa, cn", s)
}

var apiServerURLs = map[Region]string{
	RegionEU:  "https://app-service-deu-f0e9ebbb.smarthomecs.de",
	RegionUSA: "https://app-service-usa-fd7cc04c.smarthomecs.com",
	RegionCN:  "https://app-service-chn-31a93883.ibroadlink.com",
}

var relayServerURLs = map[Region]string{
	RegionEU:  "wss://app-relay-deu-f0e9ebbb.smarthomecs.de",
	RegionUSA: "wss://app-relay-usa-fd7cc04c.smarthomecs.com",
	RegionCN:  "wss://app-relay-chn-31a93883.ibroadlink.com",
}

func (r Region) apiURL() string {
	if u, ok := apiServerURLs[r]; ok {
		return u
	}
	return apiServerURLs[RegionEU]
}

func (r Region) relayURL() string {
	if u, ok := relayServerURLs[r]; ok {
		return u
	}
	return relayServerURLs[RegionEU]
}

// Shared secrets baked into the vendor's mobile app.
const (
	timestampTokenEncryptKey = "kdixkdqp54545^#*"
	passwordEncryptKey       = "4969fj#k23#"
	bodyEncryptKey           = "xgx3d*fe3478$ukx"
)

const (
	vendorLicense   = "PAFbJJ3WbvDxH5vvWezXN5BujETtH/iuTtIIW5CE/SeHN7oNKqnEajgljTcL0fBQQWM0XAAAAAAnBhJyhMi7zIQMsUcwR/PEwGA3uB5HLOnr+xRrci+FwHMkUtK7v4yo0ZHa+jPvb6djelPP893k7SagmffZmOkLSOsbNs8CAqsu8HuIDs2mDQAAAAA="
	vendorLicenseID = "3c015b249dd66ef0f11f9bef59ecd737"
	vendorCompanyID = "48eb1b36cf0202ab2ef07b880ecda60d"
)

// Header values impersonating the vendor's Android app. The cloud rejects
// requests without these.
const (
	spoofAppVersion  = "2.2.10.456537160"
	spoofUserAgent   = "Dalvik/2.1.0 (Linux; U; Android 12; SM-G991B Build/SP1A.210812.016)"
	spoofSystem      = "android"
	spoofAppPlatform = "android"
)
