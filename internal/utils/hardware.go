package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
	"sync"
)

var (
	deviceIDOnce sync.Once
	deviceID     string
)

// DeviceID derives a stable terminal identifier from the first active
// network interface's MAC address, hashed so the raw address never leaves
// the machine. The result looks like "POS-A1B2C3D4" and is computed once.
func DeviceID() string {
	deviceIDOnce.Do(func() {
		deviceID = computeDeviceID()
	})
	return deviceID
}

func computeDeviceID() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "UNKNOWN-TERMINAL"
	}

	var macAddress string
	for _, i := range interfaces {
		if i.Flags&net.FlagUp != 0 && len(i.HardwareAddr) > 0 {
			macAddress = i.HardwareAddr.String()
			break
		}
	}
	if macAddress == "" {
		return "UNKNOWN-TERMINAL"
	}

	hash := sha256.Sum256([]byte(macAddress + "pos-client-terminal"))
	return "POS-" + strings.ToUpper(hex.EncodeToString(hash[:])[:8])
}
