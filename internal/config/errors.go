package config

import "errors"

// ErrMissingRequiredSetting is returned from validation when a setting with
// no usable default is absent. These are operator mistakes, not user errors.
var ErrMissingRequiredSetting = errors.New("missing required setting")
