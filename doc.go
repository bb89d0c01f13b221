/*
Command catmatch cross-matches elliptical source detections between two
astronomical catalogs on the celestial sphere.

Program overview

Input is a pointing catalog produced by a source finder (a CSV table plus
a JSON coordinate-header sidecar) and an external catalog to match
against: a survey table in one of the known layouts, or any table
described by a user-supplied JSON schema.  Output reports, for each
external source, which pointing sources overlap it and how well their
positions and flux densities agree.

Two sources match when their sigma-scaled elliptical footprints overlap
on the sky.  Each pair is first screened with a cheap analytic bound;
only pairs the bound cannot decide pay for an exact polygon intersection
test, which also handles footprints crossing the RA 0/360 discontinuity.
Statistics of the astrometric offsets and flux ratios are aggregated
overall and per multiplicity class, so that blended multi-counterpart
matches can be separated from clean one-to-one matches.

Command line usage

Invoking the program without arguments shows this usage prompt.

  Usage: catmatch [options] <pointing-catalog> <pointing-header> <external-catalog>

  Options:
         -schema <name|file>  external table layout: bdsf, nvss, first,
                              sumss, tgss, or a JSON schema file
         -sigma <s>           matching extent in sigma (default 3)
         -searchdist <d>      additional search distance, arcsec (default 0)
         -fluxtype <t>        Total or Peak flux ratios (default Total)
         -alpha <a>           spectral index for the flux frequency
                              correction (default 0.8)
         -out <file>          write the joined catalog CSV
         -stats <file>        write the match statistics JSON
         -ann <file>          write a kvis annotation file
         -annall              annotate non-matched pointing sources too
         -v                   display version

File formats

The pointing catalog is a CSV table in the PyBDSF source-list layout with
columns RA, DEC, Maj, Min, PA (degrees, FWHM axes, position angle east of
north), Peak_flux, Total_flux and Quality_flag.  Rows with a quality flag
other than 1 are dropped at load time.

The pointing header is a JSON object carrying the FITS keys copied
through by the source-finding stage: CRVAL1, CRVAL2, CRPIX1, CRPIX2,
CDELT1, CDELT2, SF_BMAJ, SF_BMIN, SF_BPA, FREQ and optionally OBJECT.

A user-supplied external schema is a JSON object with a data_columns
mapping (ra, dec, majax, minax, pa, and optionally peak_flux, total_flux,
quality_flag) and a properties object (BMAJ, BMIN, BPA in arcsec, freq in
MHz, and optional axis_scale and flux_scale unit conversions).

The -stats output is a JSON record of the raw offset and flux-ratio
series plus min, max, std, mean, median and count aggregates per
multiplicity class; -out writes the external table joined to its matched
pointing rows; -ann writes karma annotations of the matched field.

Public domain.
*/
package main
