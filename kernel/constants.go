package kernel

import "strings"

// The closed vocabularies of the metadata language.  Every token in a fixed
// categorical position must be drawn from the matching set; parse errors
// report the allowed set alongside the offending value.

var validAccesses = []string{"go_read", "go_write", "go_readwrite"}

var validFieldGridTypes = []string{
	"go_ct", "go_cu", "go_cv", "go_cf",
	"go_r_scalar", "go_i_scalar",
}

// scalarGridTypes are the grid-point types marking a field entry as a plain
// scalar argument.
var scalarGridTypes = []string{"go_r_scalar", "go_i_scalar"}

var validStencilNames = []string{"go_pointwise"}

var validIteratesOver = []string{"go_all_pts", "go_internal_pts", "go_external_pts"}

var validOffsetNames = []string{
	"go_offset_se", "go_offset_sw", "go_offset_ne", "go_offset_nw", "go_offset_any",
}

var validGridProperties = []string{
	"go_grid_area_t", "go_grid_area_u", "go_grid_area_v",
	"go_grid_mask_t",
	"go_grid_dx_t", "go_grid_dx_u", "go_grid_dx_v",
	"go_grid_dy_t", "go_grid_dy_u", "go_grid_dy_v",
	"go_grid_lat_u", "go_grid_lat_v",
	"go_grid_dx_const", "go_grid_dy_const",
	"go_grid_x_min_index", "go_grid_x_max_index",
	"go_grid_y_min_index", "go_grid_y_max_index",
}

var validOperatorDataTypes = []string{"go_real", "go_integer"}

var validFunctionSpaces = []string{
	"w0", "w1", "w2", "w3", "wtheta", "w2h", "w2v", "any_space",
}

// inSet matches a token against a vocabulary, ignoring case.
func inSet(set []string, value string) bool {
	lower := strings.ToLower(value)
	for _, entry := range set {
		if entry == lower {
			return true
		}
	}
	return false
}

// setString renders a vocabulary for inclusion in an error message.
func setString(set []string) string {
	return "['" + strings.Join(set, "', '") + "']"
}
