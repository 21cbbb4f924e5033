package modmath

import "math/bits"

// MulMod (a*b) mod m をオーバーフローなしで計算
// 64bit同士の積は128bit中間値(hi, lo)で保持してから剰余を取る。
// 事前に a, b を m で還元しておくと hi < m が保証され、bits.Div64 はパニックしない。
// m >= 1 は呼び出し側の責務。
func MulMod(a, b, m uint64) uint64 {
	a %= m
	b %= m

	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// PowMod 冪乗のMod(繰り返し二乗法)
// 指数のビットを下位から見て、立っているビットのところだけ結果に掛け込む。
// 乗算は全て MulMod 経由なのでオーバーフローしない。O(log exp) 回の乗算。
func PowMod(base, exp, mod uint64) uint64 {
	result := 1 % mod
	base = base % mod

	for exp > 0 {
		// ビット演算 1桁目を確認
		if exp&1 == 1 {
			result = MulMod(result, base, mod)
		}

		base = MulMod(base, base, mod)

		// 右へ1bitずらす。1101 -> 110
		exp >>= 1
	}
	return result
}
