package account

// NetWorth sums account balances with the liability sign convention: credit
// account balances are subtracted, everything else is added.
func NetWorth(accounts []*Account) float64 {
	var total float64
	for _, a := range accounts {
		if a.Type == TypeCredit {
			total -= a.Balance
		} else {
			total += a.Balance
		}
	}
	return total
}
