package khmer

// khmerClusterLength returns the length, in code points, of the maximal
// cluster starting at i: a base consonant or independent vowel, followed by
// coeng-consonant pairs, dependent vowels, and signs. Non-cluster-starting
// code points have length 1.
func khmerClusterLength(cps []rune, i, n int) int {
	if i >= n {
		return 0
	}
	c := cps[i]
	if !(c >= khmerMainStart && c <= 0x17B3) {
		return 1
	}

	j := i + 1
	for j < n {
		cur := cps[j]
		if IsCoeng(cur) {
			if j+1 < n && IsConsonant(cps[j+1]) {
				j += 2
				continue
			}
			break
		}
		if IsDependentVowel(cur) || IsSign(cur) {
			j++
			continue
		}
		break
	}
	return j - i
}

// numberLength returns the length, in code points, of the number/currency
// group starting at i. A leading currency symbol is consumed first when it
// is immediately followed by a digit; a comma, period, or space is consumed
// as two code points only when immediately followed by another digit.
func numberLength(cps []rune, i, n int) int {
	j := i
	if IsCurrency(cps[j]) {
		if j+1 < n && IsDigit(cps[j+1]) {
			j++
		} else {
			return 0
		}
	} else if IsDigit(cps[j]) {
		j++
	} else {
		return 0
	}

	for j < n {
		c := cps[j]
		if IsDigit(c) {
			j++
			continue
		}
		if c == ',' || c == '.' || c == ' ' {
			if j+1 < n && IsDigit(cps[j+1]) {
				j += 2
				continue
			}
		}
		break
	}
	return j - i
}

// acronymStart reports whether a cluster starting at i is immediately
// followed by a period, the trigger for Class 3.
func acronymStart(cps []rune, i, n int) bool {
	clusterLen := khmerClusterLength(cps, i, n)
	if clusterLen == 0 {
		return false
	}
	dot := i + clusterLen
	return dot < n && cps[dot] == '.'
}

// acronymLength returns the total length, in code points, of a run of
// cluster-then-period groups starting at i.
func acronymLength(cps []rune, i, n int) int {
	j := i
	for {
		clusterLen := khmerClusterLength(cps, j, n)
		if clusterLen == 0 {
			break
		}
		dot := j + clusterLen
		if dot < n && cps[dot] == '.' {
			j = dot + 1
			if j >= n {
				break
			}
			continue
		}
		break
	}
	return j - i
}
