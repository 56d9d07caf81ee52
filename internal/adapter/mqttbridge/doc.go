// Package mqttbridge maps MQTT-connected devices onto registry
// services and channels.
//
// Each bridged device is declared in a YAML devices file with a list
// of channels. Every channel gets a state topic the device publishes
// on and, for setters, a command topic the gateway publishes to:
//
//	larkhub/state/{device}/{channel}     device -> gateway
//	larkhub/command/{device}/{channel}   gateway -> device
//
// Payloads are small JSON envelopes carrying the channel kind and one
// typed field (see Codec). The mechanism caches the latest state
// message per channel, so reads are answered locally; a channel that
// has never reported yields an adapter error until the first message
// arrives.
package mqttbridge
