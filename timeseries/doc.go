// Package timeseries provides the price series container and data access
// used across housecast.
//
// A Series pairs strictly increasing timestamps with real-valued prices for
// one named geographic key, typically a zipcode. Housing exports arrive as a
// wide table (rows = months, columns = zipcodes); Frame loads that shape and
// hands out individual columns as Series.
//
// # Creating a Series
//
// Monthly series are the common case:
//
//	start := time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC)
//	series := timeseries.NewMonthly("30331", start, prices)
//
// Explicit timestamps go through New, which validates ordering:
//
//	series, err := timeseries.New("30331", timestamps, prices)
//
// # Loading a wide frame
//
// Load a zipcode panel and select one column:
//
//	frame, err := timeseries.LoadFrame("prices.csv")
//	if err != nil {
//	    return err
//	}
//	series, err := frame.Column("30331")
//
// Leading and trailing gaps in a column are dropped (zipcodes enter and
// leave the panel); a gap in the middle of a column is an error.
//
// # Train/test split
//
// Partition a series for validation, training on the leading fraction:
//
//	split, err := timeseries.TrainTestSplit(series, 0.85)
//	// split.Train, split.Test
//
// Train and Test concatenate back to the source series exactly.
package timeseries
