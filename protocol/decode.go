package protocol

// Decoders map a response to the typed result of the verb that produced it.
// Anything outside the accepted patterns is a *ViolationError; an ERROR line
// never yields a success value.

func violation(verb Verb, resp *Response) *ViolationError {
	return &ViolationError{Verb: verb, Line: resp.Line, Code: resp.Code}
}

// DecodeSet accepts "OK" only.
func DecodeSet(resp *Response) (bool, error) {
	if resp.IsOK() {
		return true, nil
	}
	return false, violation(VerbSet, resp)
}

// DecodeGet returns the value for "OK <value>" and found=false for
// "ERROR KEY_NOT_FOUND".
func DecodeGet(resp *Response) (value string, found bool, err error) {
	switch {
	case resp.IsValue():
		return resp.Token, true, nil
	case resp.IsNotFound():
		return "", false, nil
	default:
		return "", false, violation(VerbGet, resp)
	}
}

// DecodeDelete returns true for "OK" and false for "ERROR KEY_NOT_FOUND".
func DecodeDelete(resp *Response) (bool, error) {
	switch {
	case resp.IsOK():
		return true, nil
	case resp.IsNotFound():
		return false, nil
	default:
		return false, violation(VerbDelete, resp)
	}
}

// DecodeExists returns true for "OK 1" and false for "OK 0".
func DecodeExists(resp *Response) (bool, error) {
	if resp.IsValue() {
		switch resp.Token {
		case TokenTrue:
			return true, nil
		case TokenFalse:
			return false, nil
		}
	}
	return false, violation(VerbExists, resp)
}
