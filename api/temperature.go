package api

// Temperature is one of the configured serving temperatures.
type Temperature string

func (e Temperature) String() string {
	return string(e)
}
