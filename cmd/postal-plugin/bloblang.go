package main

import (
	"context"

	"github.com/redpanda-data/benthos/v4/public/bloblang"

	"github.com/twinfer/postal-plugin/pkg/postal"
)

func init() {
	normalizeSpec := bloblang.NewPluginSpec().
		Category("String Manipulation").
		Description("Returns the ordered array of normalized variants of a postal address, as produced by libpostal.").
		Example("", `root.variants = this.address.normalize_address()`)

	err := bloblang.RegisterMethodV2("normalize_address", normalizeSpec,
		func(args *bloblang.ParsedParams) (bloblang.Method, error) {
			return bloblang.StringMethod(func(s string) (any, error) {
				variants, err := postal.Normalize(context.Background(), s)
				if err != nil {
					return nil, err
				}
				out := make([]any, len(variants))
				for i, v := range variants {
					out[i] = v
				}
				return out, nil
			}), nil
		})
	if err != nil {
		panic(err)
	}

	parseSpec := bloblang.NewPluginSpec().
		Category("String Manipulation").
		Description("Parses a postal address into an object with one entry per component label emitted by libpostal.").
		Example("", `root.components = this.address.parse_address()`)

	err = bloblang.RegisterMethodV2("parse_address", parseSpec,
		func(args *bloblang.ParsedParams) (bloblang.Method, error) {
			return bloblang.StringMethod(func(s string) (any, error) {
				return postal.Parse(context.Background(), s)
			}), nil
		})
	if err != nil {
		panic(err)
	}
}
