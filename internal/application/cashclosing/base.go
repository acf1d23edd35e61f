package cashclosing

import "sort"

// BaseResult reparto de las piezas contadas entre base y consignación.
type BaseResult struct {
	Base      map[int64]int64
	Deposit   map[int64]int64
	BaseTotal int64
	Remaining int64 // lo que faltó para llegar al objetivo
	Exact     bool
}

// BuildBase arma la base de caja con las piezas disponibles sin pasarse de target.
// Primero entra el menudo (denominaciones <= smallChange, de menor a mayor) y el
// faltante se completa con una suma de subconjuntos acotada sobre las piezas restantes.
// Si así no se llega exacto, se prueba la suma acotada sobre todas las piezas y se
// queda con la base mayor. Lo que no queda en la base se consigna.
func BuildBase(counts map[int64]int64, target, smallChange int64) BaseResult {
	denoms := make([]int64, 0, len(counts))
	for d, n := range counts {
		if d > 0 && n > 0 {
			denoms = append(denoms, d)
		}
	}
	sort.Slice(denoms, func(i, j int) bool { return denoms[i] < denoms[j] })
	target = max(target, 0)

	base := make(map[int64]int64, len(counts))
	remaining := target
	for _, d := range denoms {
		if d > smallChange || remaining < d {
			continue
		}
		take := min(counts[d], remaining/d)
		base[d] += take
		remaining -= take * d
	}
	if remaining > 0 {
		left := make(map[int64]int64, len(counts))
		for _, d := range denoms {
			left[d] = counts[d] - base[d]
		}
		for d, n := range fillExact(denoms, left, remaining) {
			base[d] += n
			remaining -= n * d
		}
	}

	if remaining > 0 {
		full := fillExact(denoms, counts, target)
		if sumPieces(full) > target-remaining {
			base = full
			remaining = target - sumPieces(full)
		}
	}

	res := BaseResult{
		Base:      make(map[int64]int64, len(counts)),
		Deposit:   make(map[int64]int64, len(counts)),
		Remaining: remaining,
		Exact:     remaining == 0,
	}
	for d, n := range counts {
		n = max(n, 0)
		res.Base[d] = base[d]
		res.Deposit[d] = n - base[d]
		res.BaseTotal += d * base[d]
	}
	return res
}

func sumPieces(pieces map[int64]int64) int64 {
	var total int64
	for d, n := range pieces {
		total += d * n
	}
	return total
}

// fillExact devuelve cuántas piezas de cada denominación suman el mayor monto <= goal.
// Mochila acotada en unidades del MCD de las denominaciones; ante empate se prefieren
// las denominaciones menores.
func fillExact(denoms []int64, avail map[int64]int64, goal int64) map[int64]int64 {
	var g int64
	usable := make([]int64, 0, len(denoms))
	for _, d := range denoms {
		if avail[d] > 0 && d <= goal {
			usable = append(usable, d)
			g = gcd(g, d)
		}
	}
	if len(usable) == 0 {
		return nil
	}

	size := int(goal / g)
	reach := make([]bool, size+1)
	reach[0] = true
	// take[i][s] piezas de usable[i] usadas para alcanzar s con las primeras i+1 denominaciones.
	take := make([][]int32, len(usable))
	used := make([]int64, size+1)

	for i, d := range usable {
		u := int(d / g)
		take[i] = make([]int32, size+1)
		for s := range used {
			used[s] = 0
		}
		for s := u; s <= size; s++ {
			if reach[s] || !reach[s-u] || used[s-u] >= avail[d] {
				continue
			}
			reach[s] = true
			used[s] = used[s-u] + 1
			take[i][s] = int32(used[s])
		}
	}

	best := size
	for best > 0 && !reach[best] {
		best--
	}

	out := make(map[int64]int64, len(usable))
	for i := len(usable) - 1; i >= 0 && best > 0; i-- {
		n := take[i][best]
		if n == 0 {
			continue
		}
		out[usable[i]] = int64(n)
		best -= int(n) * int(usable[i]/g)
	}
	return out
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
