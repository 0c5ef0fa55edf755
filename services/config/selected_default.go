//go:build !clock_pcf8591 && (rp2040 || rp2350)

package config

const SelectedBoard = "pico"
