// Package icons holds the fixed catalog of dashboard icon assets.
package icons

import (
	"sort"
	"strings"
)

const extension = ".svg"

var catalog = []string{
	"ad.svg",
	"afs.svg",
	"airbag_malfunction.svg",
	"alert_triangle.svg",
	"antilock_brake_system_malfunction-na.svg",
	"antilock_brake_system_malfunction.svg",
	"auto_high_beam_blue.svg",
	"auto_high_beam_gray.svg",
	"auto_hold_green.svg",
	"auto_hold_yellow.svg",
	"autoparking.svg",
	"battery_low.svg",
	"battery_temp_cooling_canceled.svg",
	"battery_temp_cooling_compelete.svg",
	"battery_temp_cooling_progressing.svg",
	"battery_temp_cooling_scheduled.svg",
	"battery_temp_heating_canceled.svg",
	"battery_temp_heating_complete.svg",
	"battery_temp_heating_progressing.svg",
	"battery_temp_heating_scheduled.svg",
	"battery_temp_preconditioning_scheduled.svg",
	"battery_temp_preconditioning.svg",
	"diesel_preheat.svg",
	"door_trunk_open.svg",
	"dpf_gpf.svg",
	"driver_attention_warning.svg",
	"e_call.svg",
	"electronic_charging_condition.svg",
	"electronic_stability_control_system_malfunction.svg",
	"electronic_stability_control_system_off.svg",
	"electronic_stability_control_system_on.svg",
	"engine_coolant_temperature.svg",
	"engine_malfuction.svg",
	"engine_oil_pressure.svg",
	"epb.svg",
	"ev_system_malfunction.svg",
	"front_fog_lamp.svg",
	"h2_leak.svg",
	"h2_sensor.svg",
	"headlamp_blue.svg",
	"headlamp_green.svg",
	"immobilizer.svg",
	"inforamtion.svg",
	"led_head_light_malfunction.svg",
	"low_tyre_pressure.svg",
	"master_warning_multiple.svg",
	"master_warning.svg",
	"mdps_red.svg",
	"mdps_yellow.svg",
	"parking_brake_na.svg",
	"parking_brake.svg",
	"power_down.svg",
	"press_brake.svg",
	"rbs_malfunction.svg",
	"rear_fog_lamp.svg",
	"scr.svg",
	"seat_belt.svg",
	"tail_lamp.svg",
	"takeover.svg",
}

// white icons are drawn on a dark backdrop in previews
var white = map[string]bool{
	"alert_triangle.svg":          true,
	"master_warning_multiple.svg": true,
	"parking_brake.svg":           true,
}

// All returns a copy of the catalog in its published order.
func All() []string {
	return append([]string(nil), catalog...)
}

// Known reports whether name is exactly a catalog entry.
func Known(name string) bool {
	for _, icon := range catalog {
		if icon == name {
			return true
		}
	}
	return false
}

// IsWhite reports whether the icon artwork is white.
func IsWhite(name string) bool {
	return white[name]
}

// Normalize maps user input to a catalog entry, matching case-insensitively
// with or without the extension. Unknown names are lower-cased and get the
// extension appended.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	for _, icon := range catalog {
		lower := strings.ToLower(icon)
		if lower == n || lower == n+extension || strings.TrimSuffix(lower, extension) == n {
			return icon
		}
	}
	if !strings.HasSuffix(n, extension) {
		return n + extension
	}
	return n
}

// Search returns catalog entries containing query, prefix matches first.
func Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(query, extension)))
	if q == "" {
		return All()
	}
	var prefix, contains []string
	for _, icon := range catalog {
		base := strings.TrimSuffix(icon, extension)
		switch {
		case strings.HasPrefix(base, q):
			prefix = append(prefix, icon)
		case strings.Contains(base, q):
			contains = append(contains, icon)
		}
	}
	sort.Strings(prefix)
	sort.Strings(contains)
	return append(prefix, contains...)
}

// Label is the icon name without its extension.
func Label(name string) string {
	return strings.TrimSuffix(name, extension)
}
