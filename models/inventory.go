package models

// InventoryColumns is the fixed, ordered CSV header for inventory exports
var InventoryColumns = []string{
	"hostname",
	"family",
	"serialNumber",
	"platformId",
	"softwareVersion",
	"macAddress",
	"managementIpAddress",
}

// InventoryRecord is the projection of a controller network device used for exports
type InventoryRecord struct {
	Hostname            string `json:"hostname"`
	Family              string `json:"family"`
	SerialNumber        string `json:"serialNumber"`
	PlatformID          string `json:"platformId"`
	SoftwareVersion     string `json:"softwareVersion"`
	MacAddress          string `json:"macAddress"`
	ManagementIPAddress string `json:"managementIpAddress"`
}

// Row returns the record's fields in InventoryColumns order
func (r InventoryRecord) Row() []string {
	return []string{
		r.Hostname,
		r.Family,
		r.SerialNumber,
		r.PlatformID,
		r.SoftwareVersion,
		r.MacAddress,
		r.ManagementIPAddress,
	}
}
