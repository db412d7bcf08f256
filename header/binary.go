package header

// BinaryHeaderSize is the fixed size in bytes of the SEG-Y binary header.
const BinaryHeaderSize = 400

// binaryFields is the rev-1 binary-header field table (spec.md §3, expanded
// per SPEC_FULL.md §3). Bytes not named here (various reserved/unassigned
// spans) are still reachable through BinaryHeaderEdit's (offset, width,
// signed) custom form — see Table.Custom.
var binaryFields = []FieldSpec{
	{"job_id", 1, 4, true},
	{"line_number", 5, 4, true},
	{"reel_number", 9, 4, true},
	{"traces_per_ensemble", 13, 2, true},
	{"aux_traces_per_ensemble", 15, 2, true},
	{"sample_interval", 17, 2, true},
	{"sample_interval_original", 19, 2, true},
	{"samples_per_trace", 21, 2, true},
	{"samples_per_trace_original", 23, 2, true},
	{"format_code", 25, 2, true},
	{"ensemble_fold", 27, 2, true},
	{"trace_sorting_code", 29, 2, true},
	{"vertical_sum_code", 31, 2, true},
	{"sweep_frequency_start", 33, 2, true},
	{"sweep_frequency_end", 35, 2, true},
	{"sweep_length", 37, 2, true},
	{"sweep_type_code", 39, 2, true},
	{"trace_number_sweep_channel", 41, 2, true},
	{"sweep_trace_taper_length_start", 43, 2, true},
	{"sweep_trace_taper_length_end", 45, 2, true},
	{"taper_type", 47, 2, true},
	{"correlated_traces", 49, 2, true},
	{"binary_gain_recovered", 51, 2, true},
	{"amplitude_recovery_method", 53, 2, true},
	{"measurement_system", 55, 2, true},
	{"impulse_signal_polarity", 57, 2, true},
	{"vibratory_polarity_code", 59, 2, true},
	{"extended_traces_per_ensemble", 61, 4, true},
	{"extended_aux_traces_per_ensemble", 65, 4, true},
	{"extended_samples_per_trace", 69, 4, true},
	{"extended_samples_per_trace_original", 89, 4, true},
	{"extended_ensemble_fold", 93, 4, true},
	{"integer_constant", 97, 4, true},
	{"segy_revision", 301, 2, true},
	{"fixed_length_trace_flag", 303, 2, true},
	{"number_of_extended_textual_headers", 305, 2, true},
	{"number_of_data_trailer_records", 307, 4, true},
}

// BinaryFields is the canonical binary-header field table.
var BinaryFields = NewTable(BinaryHeaderSize, binaryFields)
