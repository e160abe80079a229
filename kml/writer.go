// Package kml exports a geocoded location set as a KML document that maps
// tools like Google Earth can open directly.
package kml

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/fwojciec/pinpoint"
)

const kmlNamespace = "http://www.opengis.net/kml/2.2"

// Write renders the geocoded entries of the set as KML placemarks.
// Locations without coordinates are skipped; they have nothing to plot.
func Write(w io.Writer, title string, locations pinpoint.LocationSet) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	kml := doc.CreateElement("kml")
	kml.CreateAttr("xmlns", kmlNamespace)

	folder := kml.CreateElement("Document")
	if title != "" {
		folder.CreateElement("name").SetText(title)
	}

	for _, loc := range locations {
		if !loc.Geocoded() {
			continue
		}

		placemark := folder.CreateElement("Placemark")
		placemark.CreateElement("name").SetText(loc.Name)

		desc := fmt.Sprintf("%s (confidence: %s)", loc.Type, loc.ConfidenceLabel())
		if loc.Address != "" {
			desc += "\n" + loc.Address
		}
		if loc.Context != "" {
			desc += "\n" + loc.Context
		}
		placemark.CreateElement("description").SetText(desc)

		point := placemark.CreateElement("Point")
		// KML wants lon,lat order.
		point.CreateElement("coordinates").SetText(
			fmt.Sprintf("%f,%f,0", *loc.Longitude, *loc.Latitude))
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
