package decimal

// DefaultPrecision is the precision budget used when a Context has none.
const DefaultPrecision = 100

// guardDigits are carried by iterative algorithms beyond the requested
// precision and dropped from the final result.
const guardDigits = 10

// Context carries the precision budget: the maximum number of fractional
// digits produced by division and by the convergence loops of Sqrt, Ln, Exp,
// Pow and Root. A Context is a plain value; each computation owns its own.
type Context struct {
	Precision int
}

// DefaultContext returns a Context with DefaultPrecision.
func DefaultContext() Context {
	return Context{Precision: DefaultPrecision}
}

// WithPrecision returns a Context with the given precision budget.
func WithPrecision(p int) Context {
	return Context{Precision: p}
}

func (c Context) prec() int {
	if c.Precision <= 0 {
		return DefaultPrecision
	}
	return c.Precision
}

func (c Context) working(extra int) Context {
	return Context{Precision: c.prec() + extra}
}

// Format renders d rounded to the context's precision, without trailing
// zeros.
func (c Context) Format(d Decimal) string {
	return d.Round(int32(c.prec())).String()
}
