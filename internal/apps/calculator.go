package apps

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// ErrorDisplay is shown after a division by zero
const ErrorDisplay = "Error"

// resultPrecision hides binary float noise such as 0.1+0.2
const resultPrecision = 10

type calculator struct {
	display string
	prev    *float64
	op      string
	fresh   bool
}

func newCalculator(registry.Host, types.WindowRecord) registry.Application {
	return &calculator{display: "0"}
}

func normalizeOp(op string) (string, bool) {
	switch op {
	case "+", "-":
		return op, true
	case "*", "×", "x":
		return "*", true
	case "/", "÷":
		return "/", true
	}
	return "", false
}

func apply(a, b float64, op string) (float64, bool) {
	var r float64
	switch op {
	case "+":
		r = a + b
	case "-":
		r = a - b
	case "*":
		r = a * b
	case "/":
		if b == 0 {
			return 0, false
		}
		r = a / b
	default:
		r = b
	}
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return scalar.Round(r, resultPrecision), true
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *calculator) value() float64 {
	v, err := strconv.ParseFloat(c.display, 64)
	if err != nil {
		return 0
	}
	return v
}

func (c *calculator) reset() {
	c.display, c.prev, c.op, c.fresh = "0", nil, "", false
}

func (c *calculator) fail() {
	c.reset()
	c.display = ErrorDisplay
	c.fresh = true
}

func (c *calculator) Handle(action string, params map[string]string) error {
	switch action {
	case "digit":
		d, err := param(params, "value")
		if err != nil {
			return err
		}
		if len(d) != 1 || d[0] < '0' || d[0] > '9' {
			return fmt.Errorf("%w: %q is not a digit", registry.ErrInvalidParams, d)
		}
		if c.fresh || c.display == "0" || c.display == ErrorDisplay {
			c.display = d
			c.fresh = false
		} else {
			c.display += d
		}

	case "decimal":
		switch {
		case c.fresh || c.display == ErrorDisplay:
			c.display = "0."
			c.fresh = false
		case !strings.Contains(c.display, "."):
			c.display += "."
		}

	case "operator":
		op, ok := normalizeOp(params["op"])
		if !ok {
			return fmt.Errorf("%w: unknown operator %q", registry.ErrInvalidParams, params["op"])
		}
		cur := c.value()
		if c.prev == nil {
			c.prev = &cur
		} else if c.op != "" && !c.fresh {
			r, ok := apply(*c.prev, cur, c.op)
			if !ok {
				c.fail()
				return nil
			}
			c.display = format(r)
			c.prev = &r
		}
		c.op = op
		c.fresh = true

	case "equals":
		if c.prev == nil || c.op == "" {
			return nil
		}
		r, ok := apply(*c.prev, c.value(), c.op)
		if !ok {
			c.fail()
			return nil
		}
		c.display = format(r)
		c.prev, c.op = nil, ""
		c.fresh = true

	case "clear":
		c.reset()

	case "sign":
		if c.display != "0" && c.display != ErrorDisplay {
			if strings.HasPrefix(c.display, "-") {
				c.display = c.display[1:]
			} else {
				c.display = "-" + c.display
			}
		}

	case "percent":
		if c.display != ErrorDisplay {
			c.display = format(scalar.Round(c.value()/100, resultPrecision))
		}

	default:
		return unknownAction("calculator", action)
	}
	return nil
}

func (c *calculator) Render() types.View {
	view := types.View{"kind": "calculator", "display": c.display}
	if c.op != "" {
		view["operator"] = c.op
	}
	return view
}
