package apps

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// press feeds a space-separated key sequence to the calculator
func press(t *testing.T, app registry.Application, keys string) {
	t.Helper()
	for _, k := range strings.Fields(keys) {
		var err error
		switch k {
		case "=":
			err = handle(t, app, "equals", nil)
		case ".":
			err = handle(t, app, "decimal", nil)
		case "C":
			err = handle(t, app, "clear", nil)
		case "±":
			err = handle(t, app, "sign", nil)
		case "%":
			err = handle(t, app, "percent", nil)
		case "+", "-", "*", "/", "×", "÷":
			err = handle(t, app, "operator", map[string]string{"op": k})
		default:
			for _, d := range k {
				require.NoError(t, handle(t, app, "digit", map[string]string{"value": string(d)}))
			}
		}
		require.NoError(t, err, k)
	}
}

func TestCalculator(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"", "0"},
		{"12 + 30 =", "42"},
		{"0 . 1 + 0 . 2 =", "0.3"},
		{". 5 * 4 =", "2"},
		{"2 × 3 + 4 =", "10"},
		{"9 ÷ 3 =", "3"},
		{"1 - 5 =", "-4"},
		{"10 / 4 =", "2.5"},
		{"8 / 0 =", ErrorDisplay},
		{"8 / 0 = 7", "7"},
		{"5 ±", "-5"},
		{"5 ± ±", "5"},
		{"0 ±", "0"},
		{"50 %", "0.5"},
		{"7 + C", "0"},
		{"3 + + 2 =", "5"},
		{"1 . 2 . 3", "1.23"},
		{"2 + 3 = 4", "4"},
		{"6 =", "6"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			app := mount(t, newHost(), "calculator", types.WindowRecord{})
			press(t, app, tt.keys)
			assert.Equal(t, tt.want, app.Render()["display"])
		})
	}
}

func TestCalculatorRejectsBadInput(t *testing.T) {
	app := mount(t, newHost(), "calculator", types.WindowRecord{})

	assert.ErrorIs(t, handle(t, app, "digit", map[string]string{"value": "12"}), registry.ErrInvalidParams)
	assert.ErrorIs(t, handle(t, app, "digit", map[string]string{"value": "x"}), registry.ErrInvalidParams)
	assert.ErrorIs(t, handle(t, app, "operator", map[string]string{"op": "^"}), registry.ErrInvalidParams)
}
