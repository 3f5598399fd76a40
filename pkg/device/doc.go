// Package device discovers candidate block devices in the device namespace.
//
// A candidate is an entry whose name is a three-letter base token followed by
// one or more digits (sdc1, sdc12). The scanner returns candidates sorted
// ascending by name; an empty result means there is nothing to collect.
//
//	scanner, err := device.NewScanner(device.WithPrefix("sdc"))
//	devices, err := scanner.Scan(ctx)
package device
