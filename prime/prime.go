package prime

import (
	"github.com/cockroachdb/errors"

	"prime-pkg/modmath"
)

// DefaultBases 64bit符号付き整数の全域で決定的に判定できる基数セット
// 先頭12個の素数で n < 3.18*10^24 まで誤判定なし(Sorenson–Webster)。
// 順序は固定。合成数が見つかった時点で打ち切るので小さい基数を先に置く。
var DefaultBases = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// smallPrimes 53以下の奇素数。ウィットネス判定前の篩い落とし用。
var smallPrimes = [...]uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

// MaxInt64Prime int64で表現できる最大の素数
const MaxInt64Prime = int64(9223372036854775783)

// ErrNoNextPrime int64の範囲に次の素数が存在しない場合のエラー
var ErrNoNextPrime = errors.New("no next prime within int64 range")

// Decompose n-1 を d・2^s (dは奇数) に分解
// nは3以上の奇数であること。戻り値は s >= 1 を満たす。
func Decompose(n uint64) (d uint64, s int) {
	d = n - 1
	for d&1 == 0 {
		d >>= 1
		s++
	}
	return d, s
}

// isWitnessComposite 基数aがnの合成数性を証明するかを判定
// trueを返した場合、nは数学的に確実に合成数。
// falseは「この基数では見破れなかった」であって素数の証明ではない。
func isWitnessComposite(a, d, n uint64, s int) bool {
	x := modmath.PowMod(a, d, n)

	// 最初の判定
	if x == 1 || x == n-1 {
		return false // この基数では合成数と言えない
	}

	// 繰り返し二乗
	for r := 1; r < s; r++ {
		x = modmath.MulMod(x, x, n)

		if x == n-1 {
			return false
		}

		if x == 1 {
			// n-1 を経由せず 1 に到達した。非自明な平方根が存在するので合成数確定。
			return true
		}
	}

	return true // 一度も n-1 に到達しなかった
}

// IsPrime nが素数かどうかを判定
func IsPrime(n int64) bool {
	return IsPrimeWithBases(n, DefaultBases)
}

// IsPrimeWithBases 指定された基数リストでnが素数かどうかを判定
// 2未満および n 以上の基数はスキップする。
// リストの決定性保証は呼び出し側の責務(DefaultBases推奨)。
func IsPrimeWithBases(n int64, bases []uint64) bool {
	if n < 2 {
		return false
	}

	u := uint64(n)
	if u&1 == 0 {
		return u == 2
	}

	// 小さい素数による篩い落とし。一致なら素数、割り切れたら合成数が確定する。
	for _, p := range smallPrimes {
		if u == p {
			return true
		}
		if u%p == 0 {
			return false
		}
	}

	d, s := Decompose(u)

	for _, a := range bases {
		if a < 2 || a >= u {
			continue
		}
		if isWitnessComposite(a, d, u, s) {
			return false // 合成数確定。残りの基数は見ない。
		}
	}

	return true
}

// NextPrime n以上で最小の素数を返す
func NextPrime(n int64) (int64, error) {
	if n > MaxInt64Prime {
		return 0, ErrNoNextPrime
	}
	if n <= 2 {
		return 2, nil
	}

	c := n
	if c&1 == 0 {
		c++
	}
	for ; ; c += 2 {
		if IsPrime(c) {
			return c, nil
		}
	}
}
