// Package points defines the common types produced when ingesting a batch of camera images, ground control point (GCP) lists and generic geo-referenced point lists into a single set of WGS84 points. The subpackages classify files, decode image metadata, parse point text files, transform coordinates, aggregate the results and export them.
package points
