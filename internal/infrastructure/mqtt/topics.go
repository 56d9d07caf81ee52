package mqtt

import "fmt"

// Topic prefixes for the Larkhub MQTT hierarchy.
//
// Device topics use the flat scheme: larkhub/{category}/{device}/{channel}
// where device is the bridged device's id and channel is the channel slug
// from the devices file.
const (
	// TopicPrefix is the base for all Larkhub topics.
	TopicPrefix = "larkhub"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "larkhub/system"
)

// Topics provides builders for Larkhub MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.DeviceState("porch-light", "power")
//	// Returns: "larkhub/state/porch-light/power"
type Topics struct{}

// DeviceState returns the topic a device publishes channel state on.
//
// Example: larkhub/state/porch-light/power
func (Topics) DeviceState(deviceID, channelSlug string) string {
	return fmt.Sprintf("%s/state/%s/%s", TopicPrefix, deviceID, channelSlug)
}

// DeviceCommand returns the topic the gateway publishes channel commands on.
//
// Example: larkhub/command/porch-light/power
func (Topics) DeviceCommand(deviceID, channelSlug string) string {
	return fmt.Sprintf("%s/command/%s/%s", TopicPrefix, deviceID, channelSlug)
}

// DeviceAvailability returns the topic a device reports its availability on,
// usually as a retained online/offline message.
//
// Example: larkhub/availability/porch-light
func (Topics) DeviceAvailability(deviceID string) string {
	return fmt.Sprintf("%s/availability/%s", TopicPrefix, deviceID)
}

// SystemStatus returns the topic for the gateway's own status messages,
// including the Last Will and Testament.
//
// Example: larkhub/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllDeviceStates returns a pattern matching all device state updates.
//
// Pattern: larkhub/state/+/+
func (Topics) AllDeviceStates() string {
	return fmt.Sprintf("%s/state/+/+", TopicPrefix)
}

// AllDeviceAvailability returns a pattern matching all availability topics.
//
// Pattern: larkhub/availability/+
func (Topics) AllDeviceAvailability() string {
	return fmt.Sprintf("%s/availability/+", TopicPrefix)
}

// AllTopics returns a pattern matching all Larkhub topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: larkhub/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}
