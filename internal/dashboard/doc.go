// Package dashboard renders the seven fixed views of the movie dashboard from
// a filtered table. Every view is computed from scratch on each call and none
// of them modify the rows they are given.
//
// Views, in display order:
//
//	correlation           Pearson matrix over budget, gross, score, votes, runtime and ROI
//	budget-vs-gross       scatter coloured by rating
//	top-grossing          highest gross, coloured by company
//	top-rated             highest score among movies above the vote threshold
//	top-companies         companies with the most movies
//	release-distribution  histogram of release year with a density overlay
//	roi-by-rating         box plot of ROI per rating
//
// An empty table renders every view with no marks rather than failing.
package dashboard
