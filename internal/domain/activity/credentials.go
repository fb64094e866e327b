package activity

// Credentials identifies the organization account on the learning platform.
type Credentials struct {
	ClientKey    string
	ClientSecret string
	AccountName  string
	AccountID    string
}

// Missing returns the environment names of required credentials that are empty.
func (c Credentials) Missing() []string {
	var missing []string
	if c.ClientKey == "" {
		missing = append(missing, "CLIENT_KEY")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "CLIENT_SECRET")
	}
	if c.AccountName == "" {
		missing = append(missing, "ACCOUNT_NAME")
	}
	if c.AccountID == "" {
		missing = append(missing, "ACCOUNT_ID")
	}
	return missing
}
