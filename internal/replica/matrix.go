package replica

// ExchangeMatrix counts attempted and accepted swaps per replica-slot
// pair. Counters are symmetric in the pair and updated on every attempt,
// so acceptance rates can be computed per pair afterwards.
type ExchangeMatrix struct {
	n         int
	attempted [][]int
	accepted  [][]int
}

func NewExchangeMatrix(n int) *ExchangeMatrix {
	m := &ExchangeMatrix{
		n:         n,
		attempted: make([][]int, n),
		accepted:  make([][]int, n),
	}
	for i := 0; i < n; i++ {
		m.attempted[i] = make([]int, n)
		m.accepted[i] = make([]int, n)
	}
	return m
}

func (m *ExchangeMatrix) Size() int { return m.n }

func (m *ExchangeMatrix) RecordAttempt(i, j int) {
	m.attempted[i][j]++
	m.attempted[j][i]++
}

func (m *ExchangeMatrix) RecordAccept(i, j int) {
	m.accepted[i][j]++
	m.accepted[j][i]++
}

func (m *ExchangeMatrix) Attempted(i, j int) int { return m.attempted[i][j] }
func (m *ExchangeMatrix) Accepted(i, j int) int  { return m.accepted[i][j] }

// TotalAttempts is the number of swap attempts made, each pair counted once.
func (m *ExchangeMatrix) TotalAttempts() int {
	total := 0
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			total += m.attempted[i][j]
		}
	}
	return total
}

// AcceptanceRate returns accepted/attempted for a pair, zero when the
// pair was never tried.
func (m *ExchangeMatrix) AcceptanceRate(i, j int) float64 {
	if m.attempted[i][j] == 0 {
		return 0
	}
	return float64(m.accepted[i][j]) / float64(m.attempted[i][j])
}
