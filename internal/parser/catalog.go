package parser

import (
	"fmt"
)

// AttributeCatalog resolves the declared value type of an attribute code.
// Symbology libraries own the authoritative table; the decoder only needs
// to know which string-encoded attributes are integer lists.
type AttributeCatalog interface {
	AttributeType(code uint16) AttributeType
}

// S-57 Object Class lookup table
// Source: IHO S-57 Edition 3.1 Appendix A - Object Catalogue
var objectClassNames = map[uint16]string{
	1: "ADMARE", 2: "AIRARE", 3: "ACHBRT", 4: "ACHARE", 5: "BCNCAR", 6: "BCNISD",
	7: "BCNLAT", 8: "BCNSAW", 9: "BCNSPP", 10: "BERTHS", 11: "BRIDGE", 12: "BUISGL",
	13: "BUAARE", 14: "BOYCAR", 15: "BOYINB", 16: "BOYISD", 17: "BOYLAT", 18: "BOYSAW",
	19: "BOYSPP", 20: "CBLARE", 21: "CBLOHD", 22: "CBLSUB", 23: "CANALS", 24: "CANBNK",
	25: "CTSARE", 26: "CAUSWY", 27: "CTNARE", 28: "CHKPNT", 29: "CGUSTA", 30: "COALNE",
	31: "CONZNE", 32: "COSARE", 33: "CTRPNT", 34: "CONVYR", 35: "CRANES", 36: "CURENT",
	37: "CUSZNE", 38: "DAMCON", 39: "DAYMAR", 40: "DWRTCL", 41: "DWRTPT", 42: "DEPARE",
	43: "DEPCNT", 44: "DISMAR", 45: "DOCARE", 46: "DRGARE", 47: "DRYDOC", 48: "DMPGRD",
	49: "DYKCON", 50: "EXEZNE", 51: "FAIRWY", 52: "FNCLNE", 53: "FERYRT", 54: "FSHZNE",
	55: "FSHFAC", 56: "FSHGRD", 57: "FLODOC", 58: "FOGSIG", 59: "FORSTC", 60: "FRPARE",
	61: "GATCON", 62: "GRIDRN", 63: "HRBARE", 64: "HRBFAC", 65: "HULKES", 66: "ICEARE",
	67: "ICNARE", 68: "ISTZNE", 69: "LAKARE", 70: "LAKSHR", 71: "LNDARE", 72: "LNDELV",
	73: "LNDRGN", 74: "LNDMRK", 75: "LIGHTS", 76: "LITFLT", 77: "LITVES", 78: "LOCMAG",
	79: "LOKBSN", 80: "LOGPON", 81: "MAGVAR", 82: "MARCUL", 83: "MIPARE", 84: "MORFAC",
	85: "NAVLNE", 86: "OBSTRN", 87: "OFSPLF", 88: "OSPARE", 89: "OILBAR", 90: "PILPNT",
	91: "PILBOP", 92: "PIPARE", 93: "PIPOHD", 94: "PIPSOL", 95: "PONTON", 96: "PRCARE",
	97: "PRDARE", 98: "PYLONS", 99: "RADLNE", 100: "RADRNG", 101: "RADRFL", 102: "RADSTA",
	103: "RTPBCN", 104: "RDOCAL", 105: "RDOSTA", 106: "RAILWY", 107: "RAPIDS", 108: "RCRTCL",
	109: "RECTRC", 110: "RCTLPT", 111: "RSCSTA", 112: "RESARE", 113: "RETRFL", 114: "RIVERS",
	115: "RIVBNK", 116: "ROADWY", 117: "RUNWAY", 118: "SNDWAV", 119: "SEAARE", 120: "SPLARE",
	121: "SBDARE", 122: "SLCONS", 123: "SISTAT", 124: "SISTAW", 125: "SILTNK", 126: "SLOTOP",
	127: "SLOGRD", 128: "SMCFAC", 129: "SOUNDG", 130: "SPRING", 131: "SQUARE", 132: "STSLNE",
	133: "SUBTLN", 134: "SWPARE", 135: "TESARE", 136: "TS_PRH", 137: "TS_PNH", 138: "TS_PAD",
	139: "TS_TIS", 140: "T_HMON", 141: "T_NHMN", 142: "T_TIMS", 143: "TIDEWY", 144: "TOPMAR",
	145: "TSELNE", 146: "TSSBND", 147: "TSSCRS", 148: "TSSLPT", 149: "TSSRON", 150: "TSEZNE",
	151: "TUNNEL", 152: "TWRTPT", 153: "UWTROC", 154: "UNSARE", 155: "VEGATN", 156: "WATTUR",
	157: "WATFAL", 158: "WEDKLP", 159: "WRECKS", 300: "M_ACCY", 301: "M_CSCL", 302: "M_COVR",
	303: "M_HDAT", 304: "M_HOPA", 305: "M_NPUB", 306: "M_NSYS", 307: "M_PROD", 308: "M_QUAL",
	309: "M_SDAT", 310: "M_SREL", 311: "M_UNIT", 312: "M_VDAT", 400: "C_AGGR", 401: "C_ASSO",
	402: "C_STAC",
}

type attributeDescription struct {
	acronym string
	typ     AttributeType
}

// S-57 attribute catalogue, Appendix A Chapter 2. Enumerated and integer
// attributes are Integer, list attributes (type L) are IntegerList.
var attributeCatalogue = map[uint16]attributeDescription{
	1: {"AGENCY", AttributeString}, 2: {"BCNSHP", AttributeInteger}, 3: {"BUISHP", AttributeInteger},
	4: {"BOYSHP", AttributeInteger}, 5: {"BURDEP", AttributeReal}, 6: {"CALSGN", AttributeString},
	7: {"CATAIR", AttributeIntegerList}, 8: {"CATACH", AttributeIntegerList}, 9: {"CATBRG", AttributeIntegerList},
	10: {"CATBUA", AttributeInteger}, 11: {"CATCBL", AttributeInteger}, 12: {"CATCAN", AttributeInteger},
	13: {"CATCAM", AttributeInteger}, 14: {"CATCHP", AttributeInteger}, 15: {"CATCOA", AttributeInteger},
	16: {"CATCTR", AttributeInteger}, 17: {"CATCON", AttributeInteger}, 18: {"CATCOV", AttributeInteger},
	19: {"CATCRN", AttributeInteger}, 20: {"CATDAM", AttributeInteger}, 21: {"CATDIS", AttributeInteger},
	22: {"CATDOC", AttributeInteger}, 23: {"CATDPG", AttributeIntegerList}, 24: {"CATFNC", AttributeInteger},
	25: {"CATFRY", AttributeInteger}, 26: {"CATFIF", AttributeInteger}, 27: {"CATFOG", AttributeInteger},
	28: {"CATFOR", AttributeIntegerList}, 29: {"CATGAT", AttributeInteger}, 30: {"CATHAF", AttributeIntegerList},
	31: {"CATHLK", AttributeIntegerList}, 32: {"CATICE", AttributeInteger}, 33: {"CATINB", AttributeInteger},
	34: {"CATLND", AttributeIntegerList}, 35: {"CATLMK", AttributeIntegerList}, 36: {"CATLAM", AttributeInteger},
	37: {"CATLIT", AttributeIntegerList}, 38: {"CATMFA", AttributeInteger}, 39: {"CATMPA", AttributeIntegerList},
	40: {"CATMOR", AttributeInteger}, 41: {"CATNAV", AttributeInteger}, 42: {"CATOBS", AttributeInteger},
	43: {"CATOFP", AttributeIntegerList}, 44: {"CATOLB", AttributeInteger}, 45: {"CATPLE", AttributeInteger},
	46: {"CATPIL", AttributeInteger}, 47: {"CATPIP", AttributeIntegerList}, 48: {"CATPRA", AttributeInteger},
	49: {"CATPYL", AttributeInteger}, 50: {"CATQUA", AttributeInteger}, 51: {"CATRAS", AttributeInteger},
	52: {"CATRTB", AttributeInteger}, 53: {"CATROS", AttributeIntegerList}, 54: {"CATTRK", AttributeInteger},
	55: {"CATRSC", AttributeIntegerList}, 56: {"CATREA", AttributeIntegerList}, 57: {"CATROD", AttributeInteger},
	58: {"CATRUN", AttributeInteger}, 59: {"CATSEA", AttributeInteger}, 60: {"CATSLC", AttributeInteger},
	61: {"CATSIT", AttributeIntegerList}, 62: {"CATSIW", AttributeIntegerList}, 63: {"CATSIL", AttributeInteger},
	64: {"CATSLO", AttributeInteger}, 65: {"CATSCF", AttributeIntegerList}, 66: {"CATSPM", AttributeIntegerList},
	67: {"CATTSS", AttributeInteger}, 68: {"CATVEG", AttributeIntegerList}, 69: {"CATWAT", AttributeInteger},
	70: {"CATWED", AttributeInteger}, 71: {"CATWRK", AttributeInteger}, 72: {"CATZOC", AttributeInteger},
	73: {"$SPACE", AttributeInteger}, 74: {"$CHARS", AttributeString}, 75: {"COLOUR", AttributeIntegerList},
	76: {"COLPAT", AttributeIntegerList}, 77: {"COMCHA", AttributeString}, 78: {"$CSIZE", AttributeReal},
	79: {"CPDATE", AttributeString}, 80: {"CSCALE", AttributeInteger}, 81: {"CONDTN", AttributeInteger},
	82: {"CONRAD", AttributeInteger}, 83: {"CONVIS", AttributeInteger}, 84: {"CURVEL", AttributeReal},
	85: {"DATEND", AttributeString}, 86: {"DATSTA", AttributeString}, 87: {"DRVAL1", AttributeReal},
	88: {"DRVAL2", AttributeReal}, 89: {"DUNITS", AttributeInteger}, 90: {"ELEVAT", AttributeReal},
	91: {"ESTRNG", AttributeReal}, 92: {"EXCLIT", AttributeInteger}, 93: {"EXPSOU", AttributeInteger},
	94: {"FUNCTN", AttributeIntegerList}, 95: {"HEIGHT", AttributeReal}, 96: {"HUNITS", AttributeInteger},
	97: {"HORACC", AttributeReal}, 98: {"HORCLR", AttributeReal}, 99: {"HORLEN", AttributeReal},
	100: {"HORWID", AttributeReal}, 101: {"ICEFAC", AttributeReal}, 102: {"INFORM", AttributeString},
	103: {"JRSDTN", AttributeInteger}, 104: {"$JUSTH", AttributeInteger}, 105: {"$JUSTV", AttributeInteger},
	106: {"LIFCAP", AttributeReal}, 107: {"LITCHR", AttributeInteger}, 108: {"LITVIS", AttributeIntegerList},
	109: {"MARSYS", AttributeInteger}, 110: {"MLTYLT", AttributeInteger}, 111: {"NATION", AttributeString},
	112: {"NATCON", AttributeIntegerList}, 113: {"NATSUR", AttributeIntegerList}, 114: {"NATQUA", AttributeIntegerList},
	115: {"NMDATE", AttributeString}, 116: {"OBJNAM", AttributeString}, 117: {"ORIENT", AttributeReal},
	118: {"PEREND", AttributeString}, 119: {"PERSTA", AttributeString}, 120: {"PICREP", AttributeString},
	121: {"PILDST", AttributeString}, 122: {"PRCTRY", AttributeString}, 123: {"PRODCT", AttributeIntegerList},
	124: {"PUBREF", AttributeString}, 125: {"QUASOU", AttributeIntegerList}, 126: {"RADWAL", AttributeString},
	127: {"RADIUS", AttributeReal}, 128: {"RECDAT", AttributeString}, 129: {"RECIND", AttributeString},
	130: {"RYRMGV", AttributeString}, 131: {"RESTRN", AttributeIntegerList}, 132: {"SCAMAX", AttributeInteger},
	133: {"SCAMIN", AttributeInteger}, 134: {"SCVAL1", AttributeInteger}, 135: {"SCVAL2", AttributeInteger},
	136: {"SECTR1", AttributeReal}, 137: {"SECTR2", AttributeReal}, 138: {"SHIPAM", AttributeString},
	139: {"SIGFRQ", AttributeInteger}, 140: {"SIGGEN", AttributeInteger}, 141: {"SIGGRP", AttributeString},
	142: {"SIGPER", AttributeReal}, 143: {"SIGSEQ", AttributeString}, 144: {"SOUACC", AttributeReal},
	145: {"SDISMX", AttributeInteger}, 146: {"SDISMN", AttributeInteger}, 147: {"SORDAT", AttributeString},
	148: {"SORIND", AttributeString}, 149: {"STATUS", AttributeIntegerList}, 150: {"SURATH", AttributeString},
	151: {"SUREND", AttributeString}, 152: {"SURSTA", AttributeString}, 153: {"SURTYP", AttributeIntegerList},
	154: {"$SCALE", AttributeReal}, 155: {"$SCODE", AttributeString}, 156: {"TECSOU", AttributeIntegerList},
	157: {"$TXSTR", AttributeString}, 158: {"TXTDSC", AttributeString}, 159: {"TS_TSP", AttributeString},
	160: {"TS_TSV", AttributeString}, 161: {"T_ACWL", AttributeInteger}, 162: {"T_HWLW", AttributeString},
	163: {"T_MTOD", AttributeInteger}, 164: {"T_THDF", AttributeString}, 165: {"T_TINT", AttributeInteger},
	166: {"T_TSVL", AttributeString}, 167: {"T_VAHC", AttributeString}, 168: {"TIMEND", AttributeString},
	169: {"TIMSTA", AttributeString}, 170: {"$TINTS", AttributeInteger}, 171: {"TOPSHP", AttributeInteger},
	172: {"TRAFIC", AttributeInteger}, 173: {"VALACM", AttributeReal}, 174: {"VALDCO", AttributeReal},
	175: {"VALLMA", AttributeReal}, 176: {"VALMAG", AttributeReal}, 177: {"VALMXR", AttributeReal},
	178: {"VALNMR", AttributeReal}, 179: {"VALSOU", AttributeReal}, 180: {"VERACC", AttributeReal},
	181: {"VERCLR", AttributeReal}, 182: {"VERCCL", AttributeReal}, 183: {"VERCOP", AttributeReal},
	184: {"VERDAT", AttributeInteger}, 185: {"VERLEN", AttributeReal}, 186: {"WATLEV", AttributeInteger},
	187: {"CAT_TS", AttributeInteger}, 188: {"PUNITS", AttributeInteger},
	300: {"NINFOM", AttributeString}, 301: {"NOBJNM", AttributeString}, 302: {"NPLDST", AttributeString},
	303: {"$NTXST", AttributeString}, 304: {"NTXTDS", AttributeString},
	400: {"HORDAT", AttributeInteger}, 401: {"POSACC", AttributeReal}, 402: {"QUAPOS", AttributeInteger},
}

// s57Catalog is the AttributeCatalog backed by the built-in S-57 tables.
type s57Catalog struct{}

// DefaultCatalog returns the built-in S-57 attribute catalogue.
func DefaultCatalog() AttributeCatalog {
	return s57Catalog{}
}

func (s57Catalog) AttributeType(code uint16) AttributeType {
	if d, ok := attributeCatalogue[code]; ok {
		return d.typ
	}
	return AttributeString
}

// AttributeCodeToString converts an S-57 attribute code to its acronym.
func AttributeCodeToString(code uint16) string {
	if d, ok := attributeCatalogue[code]; ok {
		return d.acronym
	}
	return fmt.Sprintf("ATTR_%d", code)
}

// ObjectClassToString converts an S-57 object class code to its acronym.
// Unknown codes yield "OBJL_<code>".
func ObjectClassToString(code uint16) string {
	if name, ok := objectClassNames[code]; ok {
		return name
	}
	return fmt.Sprintf("OBJL_%d", code)
}
