package parsing

// Fixed instruction templates for structured extraction. Both demand a
// single JSON object so the json_object response format stays valid.

const resumeInstruction = `You are a resume parser. Extract structured data from the resume text the user provides.
Respond with a single JSON object and nothing else, using exactly these keys:
{
  "fullName": string, "email": string, "phone": string, "prefecture": string,
  "selfPr": string,
  "education": [{"school": string, "degree": string, "major": string, "startDate": "YYYY-MM", "endDate": "YYYY-MM"}],
  "workExperience": [{"companyName": string, "industry": string, "startDate": "YYYY-MM", "endDate": "YYYY-MM or empty if current", "isCurrent": boolean,
    "positions": [{"title": string, "startDate": "YYYY-MM", "endDate": "YYYY-MM or empty", "isCurrent": boolean, "description": string, "responsibilities": [string], "achievements": [string]}]}],
  "certifications": [{"name": string, "issuedBy": string, "acquiredAt": "YYYY-MM"}],
  "languages": [{"name": string, "level": string}],
  "skills": [{"name": string, "category": string, "yearsUsed": number, "level": string}]
}
Use empty strings, empty arrays, or 0 for anything the text does not state. Never invent facts.
The text may be Japanese or English; keep values in the source language.`

const jobPostingInstruction = `You are a job posting parser. Extract structured data from the posting text the user provides.
Respond with a single JSON object and nothing else, using exactly these keys:
{
  "companyName": string, "role": string, "location": string,
  "employmentType": string, "salaryRange": string,
  "requiredSkills": [string], "preferredSkills": [string],
  "description": string, "url": string, "tags": [string]
}
Use empty strings or empty arrays for anything the text does not state. Never invent facts.
The text may be Japanese or English; keep values in the source language.`
