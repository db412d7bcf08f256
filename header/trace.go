package header

// TraceHeaderSize is the fixed size in bytes of a SEG-Y trace header.
const TraceHeaderSize = 240

// traceFields is the rev-1 trace-header field table (spec.md §3, expanded
// per SPEC_FULL.md §3).
var traceFields = []FieldSpec{
	{"trace_sequence_line", 1, 4, true},
	{"trace_sequence_file", 5, 4, true},
	{"field_record", 9, 4, true},
	{"trace_number_field", 13, 4, true},
	{"energy_source_point", 17, 4, true},
	{"ensemble_number", 21, 4, true},
	{"trace_in_ensemble", 25, 4, true},
	{"trace_id_code", 29, 2, true},
	{"vertical_sum", 31, 2, true},
	{"horizontal_stack", 33, 2, true},
	{"data_use", 35, 2, true},
	{"distance_from_source_to_receiver_group", 37, 4, true},
	{"receiver_group_elevation", 41, 4, true},
	{"surface_elevation_at_source", 45, 4, true},
	{"source_depth_below_surface", 49, 4, true},
	{"datum_elevation_at_receiver_group", 53, 4, true},
	{"datum_elevation_at_source", 57, 4, true},
	{"water_depth_at_source", 61, 4, true},
	{"water_depth_at_group", 65, 4, true},
	{"elevation_scalar", 69, 2, true},
	{"coordinate_scalar", 71, 2, true},
	{"source_x", 73, 4, true},
	{"source_y", 77, 4, true},
	{"group_x", 81, 4, true},
	{"group_y", 85, 4, true},
	{"coordinate_units", 89, 2, true},
	{"weathering_velocity", 91, 2, true},
	{"subweathering_velocity", 93, 2, true},
	{"uphole_time_at_source", 95, 2, true},
	{"uphole_time_at_group", 97, 2, true},
	{"source_static_correction", 99, 2, true},
	{"group_static_correction", 101, 2, true},
	{"total_static_applied", 103, 2, true},
	{"lag_time_a", 105, 2, true},
	{"lag_time_b", 107, 2, true},
	{"delay_recording_time", 109, 2, true},
	{"mute_time_start", 111, 2, true},
	{"mute_time_end", 113, 2, true},
	{"samples_this_trace", 115, 2, true},
	{"sample_interval_this_trace", 117, 2, true},
	{"gain_type", 119, 2, true},
	{"instrument_gain_constant", 121, 2, true},
	{"instrument_initial_gain", 123, 2, true},
	{"correlated", 125, 2, true},
	{"sweep_frequency_start", 127, 2, true},
	{"sweep_frequency_end", 129, 2, true},
	{"sweep_length", 131, 2, true},
	{"sweep_type", 133, 2, true},
	{"sweep_trace_taper_length_start", 135, 2, true},
	{"sweep_trace_taper_length_end", 137, 2, true},
	{"taper_type", 139, 2, true},
	{"alias_filter_frequency", 141, 2, true},
	{"alias_filter_slope", 143, 2, true},
	{"notch_filter_frequency", 145, 2, true},
	{"notch_filter_slope", 147, 2, true},
	{"low_cut_frequency", 149, 2, true},
	{"high_cut_frequency", 151, 2, true},
	{"low_cut_slope", 153, 2, true},
	{"high_cut_slope", 155, 2, true},
	{"year", 157, 2, true},
	{"day_of_year", 159, 2, true},
	{"hour", 161, 2, true},
	{"minute", 163, 2, true},
	{"second", 165, 2, true},
	{"time_basis_code", 167, 2, true},
	{"trace_weighting_factor", 169, 2, true},
	{"geophone_group_number_roll1", 171, 2, true},
	{"geophone_group_number_first_trace", 173, 2, true},
	{"geophone_group_number_last_trace", 175, 2, true},
	{"gap_size", 177, 2, true},
	{"over_travel", 179, 2, true},
	{"cdp_x", 181, 4, true},
	{"cdp_y", 185, 4, true},
	{"inline", 189, 4, true},
	{"crossline", 193, 4, true},
	{"shotpoint_number", 197, 4, true},
	{"shotpoint_scalar", 201, 2, true},
	{"trace_units", 203, 2, true},
	{"transduction_constant_mantissa", 205, 4, true},
	{"transduction_constant_exponent", 209, 2, true},
	{"transduction_units", 211, 2, true},
	{"device_trace_identifier", 213, 2, true},
	{"times_scalar", 215, 2, true},
	{"source_type", 217, 2, true},
	{"source_energy_direction_mantissa", 219, 4, true},
	{"source_energy_direction_exponent", 223, 2, true},
	{"source_measurement_mantissa", 225, 4, true},
	{"source_measurement_exponent", 229, 2, true},
	{"source_measurement_units", 231, 2, true},
}

// TraceFields is the canonical trace-header field table.
var TraceFields = NewTable(TraceHeaderSize, traceFields)

// CoordinateFieldNames lists the six fields check_coordinate_range and
// check_coordinate_outliers evaluate (spec.md §4.8).
var CoordinateFieldNames = []string{"source_x", "source_y", "group_x", "group_y", "cdp_x", "cdp_y"}
